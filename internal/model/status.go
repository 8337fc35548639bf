package model

// JobStatus represents the status of a merge job
type JobStatus string

const (
	// JobStatusIdle means no merge has started yet
	JobStatusIdle JobStatus = "Idle"

	// JobStatusRunning means the merge worker is processing inputs
	JobStatusRunning JobStatus = "Running"

	// JobStatusCompleted means the output file was written
	JobStatusCompleted JobStatus = "Completed"

	// JobStatusFailed means the job ended without writing the output
	JobStatusFailed JobStatus = "Failed"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true if the job is in an active state
func (js JobStatus) IsActive() bool {
	return js == JobStatusRunning
}

// IsFinished returns true if the job is in a terminal state (completed or failed)
func (js JobStatus) IsFinished() bool {
	return js == JobStatusCompleted || js == JobStatusFailed
}
