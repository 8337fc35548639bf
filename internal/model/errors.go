package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for collection editing and merge preconditions
var (
	ErrNoSelection  = errors.New("no file selected")
	ErrNoInput      = errors.New("no files selected for merging")
	ErrNoOutputPath = errors.New("please specify output file path")
	ErrNoValidInput = errors.New("no valid PDF files to merge")
	ErrMergeRunning = errors.New("a merge is already running")
)

// IsPrecondition reports whether err is one of the merge precondition or
// empty-result errors that carry a user-facing message of their own
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoOutputPath) ||
		errors.Is(err, ErrNoValidInput) ||
		errors.Is(err, ErrMergeRunning)
}

// IOError reports a filesystem failure: stat on add, directory creation, or
// writing the output
type IOError struct {
	Op   string
	Path string
	Err  error
}

// NewIOError creates a new IOError
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// Error returns the error message
func (e *IOError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Op, e.Path)
}

// Unwrap returns the wrapped error
func (e *IOError) Unwrap() error {
	return e.Err
}

// InvalidDocumentError marks an input that could not be read or parsed as a
// PDF. The merge pipeline recovers from it by skipping the input.
type InvalidDocumentError struct {
	Path string
	Err  error
}

// NewInvalidDocumentError creates a new InvalidDocumentError
func NewInvalidDocumentError(path string, err error) *InvalidDocumentError {
	return &InvalidDocumentError{Path: path, Err: err}
}

// Error returns the error message
func (e *InvalidDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid PDF: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid PDF: %s", e.Path)
}

// Unwrap returns the wrapped error
func (e *InvalidDocumentError) Unwrap() error {
	return e.Err
}
