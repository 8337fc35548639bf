package model

import (
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// ModifiedLayout is the timestamp layout used for the "Modified" column
const ModifiedLayout = "2006-01-02 15:04"

// FileEntry is one input file tracked by the merge list. Path is unique within
// a collection and doubles as the entry identifier.
type FileEntry struct {
	Path        string
	DisplayName string
	SizeBytes   int64
	ModifiedAt  time.Time
}

// NewFileEntry builds an entry from a path and its stat result
func NewFileEntry(path string, size int64, modified time.Time) FileEntry {
	return FileEntry{
		Path:        path,
		DisplayName: filepath.Base(path),
		SizeBytes:   size,
		ModifiedAt:  modified,
	}
}

// SizeLabel returns the size in human readable form (e.g. "1.2 MB")
func (e FileEntry) SizeLabel() string {
	if e.SizeBytes < 0 {
		return "—"
	}
	return humanize.Bytes(uint64(e.SizeBytes))
}

// ModifiedLabel returns the modification time formatted for display, or "—" if unknown
func (e FileEntry) ModifiedLabel() string {
	if e.ModifiedAt.IsZero() {
		return "—"
	}
	return e.ModifiedAt.Format(ModifiedLayout)
}
