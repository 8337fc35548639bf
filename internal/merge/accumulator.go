package merge

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ytget/pdf-merger/internal/model"
	"github.com/ytget/pdf-merger/internal/pdfdoc"
)

// Output file permissions after staging
const OutputFilePermissions = 0644

// accumulator holds validated documents until the output is flushed. The
// output is staged in a temporary file next to the destination and renamed
// into place, so a failed job never leaves a partial file at outputPath.
type accumulator struct {
	validator Validator
	merge     func([]io.ReadSeeker, io.Writer) error
	docs      []*bytes.Reader
	paths     []string
	pages     int
	staging   string
}

func newAccumulator(v Validator) *accumulator {
	return &accumulator{validator: v, merge: pdfdoc.Merge}
}

// append reads and validates path, keeping it for the output on success.
// A validator panic marks the input invalid instead of ending the job.
func (a *accumulator) append(path string) (pages int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, model.NewInvalidDocumentError(path, err)
	}

	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, model.NewInvalidDocumentError(path, fmt.Errorf("%v", r))
		}
	}()

	pages, err = a.validator.Validate(data)
	if err != nil {
		return 0, model.NewInvalidDocumentError(path, err)
	}
	a.docs = append(a.docs, bytes.NewReader(data))
	a.paths = append(a.paths, path)
	a.pages += pages
	return pages, nil
}

func (a *accumulator) len() int {
	return len(a.docs)
}

// flush writes the accumulated documents to outputPath, replacing any file there
func (a *accumulator) flush(outputPath string) error {
	dir := filepath.Dir(outputPath)
	f, err := os.CreateTemp(dir, "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		return model.NewIOError("create", dir, err)
	}
	a.staging = f.Name()

	readers := make([]io.ReadSeeker, len(a.docs))
	for i, d := range a.docs {
		readers[i] = d
	}

	if err := a.merge(readers, f); err != nil {
		f.Close()
		return a.blame(err)
	}
	if err := f.Chmod(OutputFilePermissions); err != nil {
		f.Close()
		return model.NewIOError("chmod", a.staging, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return model.NewIOError("write", a.staging, err)
	}
	if err := f.Close(); err != nil {
		return model.NewIOError("write", a.staging, err)
	}
	if err := os.Rename(a.staging, outputPath); err != nil {
		return model.NewIOError("write", outputPath, err)
	}
	a.staging = ""
	return nil
}

// blame merges each document on its own to find the input behind a failed
// merge. err is returned unchanged when every document merges alone.
func (a *accumulator) blame(err error) error {
	for i, d := range a.docs {
		if single := a.merge([]io.ReadSeeker{d}, io.Discard); single != nil {
			return model.NewInvalidDocumentError(a.paths[i], err)
		}
	}
	return err
}

// release drops the documents and removes a leftover staging file
func (a *accumulator) release() {
	a.docs = nil
	a.paths = nil
	if a.staging != "" {
		os.Remove(a.staging)
		a.staging = ""
	}
}
