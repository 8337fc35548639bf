// Package session ties the file collection to the merge service. It is the
// single object the UI talks to.
package session

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/ytget/pdf-merger/internal/collection"
	"github.com/ytget/pdf-merger/internal/merge"
	"github.com/ytget/pdf-merger/internal/model"
)

// Session holds the ordered inputs and the merge service
type Session struct {
	files  *collection.Collection
	merger merge.Merger
	log    zerolog.Logger

	mu         sync.RWMutex
	outputPath string
}

// New creates a session around files and merger
func New(files *collection.Collection, merger merge.Merger, log zerolog.Logger) *Session {
	return &Session{
		files:  files,
		merger: merger,
		log:    log,
	}
}

// AddFiles appends paths, skipping duplicates. Failed paths are reported in
// the returned error while the rest are still added.
func (s *Session) AddFiles(paths ...string) ([]model.FileEntry, error) {
	return s.files.Add(paths...)
}

// AddDirectory appends every PDF found under root
func (s *Session) AddDirectory(root string) ([]model.FileEntry, error) {
	return s.files.AddDirectory(root)
}

// Remove drops the given paths
func (s *Session) Remove(paths ...string) error {
	return s.files.Remove(paths...)
}

// Clear empties the collection
func (s *Session) Clear() {
	s.files.Clear()
}

// MoveUp moves the entry at index one step up and returns its new index
func (s *Session) MoveUp(index int) (int, error) {
	return s.files.MoveUp(index)
}

// MoveDown moves the entry at index one step down and returns its new index
func (s *Session) MoveDown(index int) (int, error) {
	return s.files.MoveDown(index)
}

// Entries returns the current ordered entries
func (s *Session) Entries() []model.FileEntry {
	return s.files.Entries()
}

// Len returns the number of entries
func (s *Session) Len() int {
	return s.files.Len()
}

// TotalSize returns the summed size of all entries in bytes
func (s *Session) TotalSize() int64 {
	return s.files.TotalSize()
}

// OutputPath returns the output path of the last started merge
func (s *Session) OutputPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outputPath
}

// SetOutputPath records path as the current output path
func (s *Session) SetOutputPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputPath = path
}

// StartMerge snapshots the collection order and starts a job writing to
// outputPath
func (s *Session) StartMerge(outputPath string) (*model.MergeJob, <-chan model.Event, error) {
	job, events, err := s.merger.Start(s.files.Paths(), outputPath)
	if err != nil {
		s.log.Debug().Err(err).Msg("merge not started")
		return nil, nil, err
	}

	s.SetOutputPath(outputPath)
	return job, events, nil
}

// CurrentJob returns a copy of the running or most recent job
func (s *Session) CurrentJob() (*model.MergeJob, bool) {
	return s.merger.Current()
}

// IsRunning reports whether a merge is in progress
func (s *Session) IsRunning() bool {
	return s.merger.IsRunning()
}
