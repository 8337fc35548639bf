package model

import (
	"fmt"
	"path/filepath"
)

// EventKind distinguishes progress updates from the terminal outcome
type EventKind int

const (
	EventProgress EventKind = iota
	EventComplete
)

// String returns a short name for the event kind
func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Event is posted by the merge worker for the UI thread to apply. A job emits
// zero or more progress events followed by exactly one complete event.
type Event struct {
	Kind    EventKind
	JobID   string
	Percent int
	Message string
	Outcome *Outcome // set on EventComplete only
}

// Outcome is the terminal result of a merge job
type Outcome struct {
	Success    bool
	Processed  int
	Skipped    []string
	Pages      int
	OutputPath string
	Message    string
	Err        error
}

// ProgressPercent returns floor(index/total*100) for the input at index
func ProgressPercent(index, total int) int {
	if total <= 0 {
		return 0
	}
	return index * 100 / total
}

// ProgressMessage formats the status line shown while processing an input
func ProgressMessage(path string, index, total int) string {
	return fmt.Sprintf("Processing %s... (%d/%d)", filepath.Base(path), index+1, total)
}

// NewProgressEvent creates a progress event for the input at index
func NewProgressEvent(jobID, path string, index, total int) Event {
	return Event{
		Kind:    EventProgress,
		JobID:   jobID,
		Percent: ProgressPercent(index, total),
		Message: ProgressMessage(path, index, total),
	}
}

// NewSuccess builds a successful outcome
func NewSuccess(processed, pages int, skipped []string, outputPath string) Outcome {
	return Outcome{
		Success:    true,
		Processed:  processed,
		Skipped:    skipped,
		Pages:      pages,
		OutputPath: outputPath,
		Message:    fmt.Sprintf("Successfully merged %d PDFs!\nSaved to: %s", processed, outputPath),
	}
}

// NewFailure builds a failed outcome. Precondition and empty-result errors keep
// their own message; anything else is reported as an error during merging.
func NewFailure(err error, skipped []string, outputPath string) Outcome {
	msg := err.Error()
	if !IsPrecondition(err) {
		msg = "Error during merging:\n" + msg
	}
	return Outcome{
		Skipped:    skipped,
		OutputPath: outputPath,
		Message:    msg,
		Err:        err,
	}
}

// NewCompleteEvent wraps an outcome into the terminal event of a job
func NewCompleteEvent(jobID string, outcome Outcome) Event {
	percent := 0
	if outcome.Success {
		percent = 100
	}
	return Event{
		Kind:    EventComplete,
		JobID:   jobID,
		Percent: percent,
		Message: outcome.Message,
		Outcome: &outcome,
	}
}
