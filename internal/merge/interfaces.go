package merge

import (
	"github.com/ytget/pdf-merger/internal/model"
)

// Merger defines the interface for the merge service.
type Merger interface {
	// Start launches a job over a snapshot of inputs. The returned channel
	// carries the job's events in order and is closed after the complete event.
	Start(inputs []string, outputPath string) (*model.MergeJob, <-chan model.Event, error)

	// Current returns a copy of the running or most recent job
	Current() (*model.MergeJob, bool)

	// IsRunning reports whether a job is in progress
	IsRunning() bool
}

// Validator checks raw file contents and returns the page count
type Validator interface {
	Validate(data []byte) (int, error)
}
