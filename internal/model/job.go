package model

import (
	"fmt"
	"time"
)

// MergeJob represents one execution of the merge pipeline. It is created when a
// merge starts and discarded once a newer job replaces it.
type MergeJob struct {
	ID         string
	Inputs     []string // snapshot of the collection at start
	OutputPath string
	Status     JobStatus
	Processed  int      // inputs appended to the output
	Skipped    []string // inputs rejected as unreadable or invalid
	Percent    int      // 0 to 100
	Message    string   // last progress message
	LastError  string   // failure reason if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewMergeJob creates a running job over a private copy of inputs
func NewMergeJob(id string, inputs []string, outputPath string) *MergeJob {
	snapshot := make([]string, len(inputs))
	copy(snapshot, inputs)
	return &MergeJob{
		ID:         id,
		Inputs:     snapshot,
		OutputPath: outputPath,
		Status:     JobStatusRunning,
		StartedAt:  time.Now(),
	}
}

// Total returns the number of inputs in the job snapshot
func (j *MergeJob) Total() int {
	return len(j.Inputs)
}

// Duration returns how long the job ran, or has been running so far
func (j *MergeJob) Duration() time.Duration {
	if j.FinishedAt.IsZero() {
		return time.Since(j.StartedAt)
	}
	return j.FinishedAt.Sub(j.StartedAt)
}

// Apply folds an event emitted by the job into its state
func (j *MergeJob) Apply(ev Event) {
	switch ev.Kind {
	case EventProgress:
		j.Percent = ev.Percent
		j.Message = ev.Message
	case EventComplete:
		j.FinishedAt = time.Now()
		j.Message = ev.Message
		if ev.Outcome == nil {
			return
		}
		j.Processed = ev.Outcome.Processed
		j.Skipped = append([]string(nil), ev.Outcome.Skipped...)
		if ev.Outcome.Success {
			j.Status = JobStatusCompleted
			j.Percent = 100
		} else {
			j.Status = JobStatusFailed
			j.Percent = 0
			j.LastError = ev.Outcome.Message
		}
	}
}

// Clone returns a copy safe to hand across goroutines
func (j *MergeJob) Clone() *MergeJob {
	c := *j
	c.Inputs = append([]string(nil), j.Inputs...)
	c.Skipped = append([]string(nil), j.Skipped...)
	return &c
}

// String implements fmt.Stringer for log output
func (j *MergeJob) String() string {
	return fmt.Sprintf("%s [%s] %d/%d -> %s", j.ID, j.Status, j.Processed, j.Total(), j.OutputPath)
}
