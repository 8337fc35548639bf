package merge

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/pdf-merger/internal/model"
	"github.com/ytget/pdf-merger/internal/pdfdoc"
	"github.com/ytget/pdf-merger/internal/platform"
)

// JobIDPrefix prefixes generated job IDs
const JobIDPrefix = "merge-"

// Service runs merge jobs, one at a time
type Service struct {
	mu        sync.Mutex
	job       *model.MergeJob
	validator Validator
	log       zerolog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithValidator replaces the PDF validator
func WithValidator(v Validator) Option {
	return func(s *Service) {
		s.validator = v
	}
}

// WithStrictValidation selects pdfcpu's strict validation mode
func WithStrictValidation(strict bool) Option {
	return func(s *Service) {
		s.validator = pdfdoc.NewValidator(strict)
	}
}

// NewService creates a new merge service
func NewService(log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		validator: pdfdoc.NewValidator(false),
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates preconditions and launches a job on its own goroutine. A
// request while another job is running is rejected with model.ErrMergeRunning
// and leaves the running job untouched.
func (s *Service) Start(inputs []string, outputPath string) (*model.MergeJob, <-chan model.Event, error) {
	if err := checkPreconditions(inputs, outputPath); err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	if s.job != nil && s.job.Status.IsActive() {
		running := s.job.ID
		s.mu.Unlock()
		s.log.Warn().Str("job", running).Msg("merge request rejected, job still running")
		return nil, nil, model.ErrMergeRunning
	}
	job := model.NewMergeJob(generateJobID(), inputs, outputPath)
	s.job = job
	snapshot := job.Clone()
	s.mu.Unlock()

	// one progress event per input plus the complete event: the worker never
	// blocks even if nobody drains the channel
	events := make(chan model.Event, len(job.Inputs)+1)

	s.log.Info().
		Str("job", job.ID).
		Int("inputs", job.Total()).
		Str("output", job.OutputPath).
		Msg("merge started")

	go s.run(job, events)

	return snapshot, events, nil
}

// run is the worker body of one job
func (s *Service) run(job *model.MergeJob, events chan<- model.Event) {
	defer close(events)

	outcome := s.Merge(job.ID, job.Inputs, job.OutputPath, func(ev model.Event) {
		s.apply(job, ev)
		events <- ev
	})

	ev := model.NewCompleteEvent(job.ID, outcome)
	s.apply(job, ev)

	if outcome.Success {
		s.log.Info().
			Str("job", job.ID).
			Int("processed", outcome.Processed).
			Int("skipped", len(outcome.Skipped)).
			Int("pages", outcome.Pages).
			Dur("took", job.Duration()).
			Msg("merge completed")
	} else {
		s.log.Error().Err(outcome.Err).Str("job", job.ID).Msg("merge failed")
	}

	events <- ev
}

// apply records an event on the job under the service lock
func (s *Service) apply(job *model.MergeJob, ev model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.Apply(ev)
}

// Merge runs the pipeline synchronously on the calling goroutine. progress,
// if set, receives one event per input before that input is processed.
func (s *Service) Merge(jobID string, inputs []string, outputPath string, progress func(model.Event)) (outcome model.Outcome) {
	var skipped []string
	defer func() {
		if r := recover(); r != nil {
			outcome = model.NewFailure(fmt.Errorf("unexpected failure: %v", r), skipped, outputPath)
		}
	}()

	if err := checkPreconditions(inputs, outputPath); err != nil {
		return model.NewFailure(err, nil, outputPath)
	}

	log := s.log.With().Str("job", jobID).Logger()

	outputDir := filepath.Dir(outputPath)
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		return model.NewFailure(model.NewIOError("mkdir", outputDir, err), nil, outputPath)
	}

	acc := newAccumulator(s.validator)
	defer acc.release()

	total := len(inputs)
	for i, path := range inputs {
		if progress != nil {
			progress(model.NewProgressEvent(jobID, path, i, total))
		}

		pages, err := acc.append(path)
		if err != nil {
			skipped = append(skipped, path)
			log.Warn().Err(err).Str("path", path).Msg("skipping input")
			continue
		}
		log.Debug().Str("path", path).Int("pages", pages).Msg("input accepted")
	}

	if acc.len() == 0 {
		return model.NewFailure(model.ErrNoValidInput, skipped, outputPath)
	}

	if err := acc.flush(outputPath); err != nil {
		return model.NewFailure(err, skipped, outputPath)
	}

	return model.NewSuccess(acc.len(), acc.pages, skipped, outputPath)
}

// Current returns a copy of the running or most recent job
func (s *Service) Current() (*model.MergeJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job == nil {
		return nil, false
	}
	return s.job.Clone(), true
}

// IsRunning reports whether a job is in progress
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job != nil && s.job.Status.IsActive()
}

// Status returns the service state: Idle when no job ran yet, else the job status
func (s *Service) Status() model.JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job == nil {
		return model.JobStatusIdle
	}
	return s.job.Status
}

func checkPreconditions(inputs []string, outputPath string) error {
	if len(inputs) == 0 {
		return model.ErrNoInput
	}
	if outputPath == "" {
		return model.ErrNoOutputPath
	}
	return nil
}

// generateJobID generates a unique job ID using UUID v7 for time ordering
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
