package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoPages is returned for documents without a single page
var ErrNoPages = errors.New("document has no pages")

// ErrNoDocuments is returned by Merge when called with nothing to merge
var ErrNoDocuments = errors.New("no documents to merge")

var disableConfigDir sync.Once

// newConfiguration returns a fresh pdfcpu configuration. pdfcpu mutates the
// configuration during a command, so one is never shared between calls.
func newConfiguration(strict bool) *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if strict {
		conf.ValidationMode = model.ValidationStrict
	}
	return conf
}

// Validator checks that raw bytes form a well-formed PDF document
type Validator struct {
	strict bool
}

// NewValidator creates a validator; strict selects pdfcpu's strict validation mode
func NewValidator(strict bool) *Validator {
	return &Validator{strict: strict}
}

// Validate parses and validates data and returns its page count
func (v *Validator) Validate(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, errors.New("empty file")
	}

	ctx, err := api.ReadContext(bytes.NewReader(data), newConfiguration(v.strict))
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, fmt.Errorf("validate: %w", err)
	}
	if ctx.PageCount < 1 {
		return 0, ErrNoPages
	}
	return ctx.PageCount, nil
}

// Merge writes the concatenation of docs, in order, to w. pdfcpu panics on
// some malformed input; those are returned as errors.
func Merge(docs []io.ReadSeeker, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("merge: unexpected failure: %v", r)
		}
	}()

	if len(docs) == 0 {
		return ErrNoDocuments
	}
	for _, d := range docs {
		if _, err := d.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind input: %w", err)
		}
	}
	if err := api.MergeRaw(docs, w, false, newConfiguration(false)); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	return nil
}
