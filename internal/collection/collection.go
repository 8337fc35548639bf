package collection

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ytget/pdf-merger/internal/model"
	"github.com/ytget/pdf-merger/internal/platform"
)

// Collection is the ordered, deduplicated list of merge inputs. List order is
// the order the merge pipeline consumes.
type Collection struct {
	mu      sync.RWMutex
	entries []model.FileEntry
	index   map[string]struct{}
	log     zerolog.Logger
}

// New creates an empty collection that picks PDFs by extension when scanning
func New(log zerolog.Logger) *Collection {
	return &Collection{
		index: make(map[string]struct{}),
		log:   log,
	}
}

// Add appends every path not already present, in input order. A path that
// cannot be stat'ed, or is a directory, is reported in the returned error and
// the remaining paths are still added.
func (c *Collection) Add(paths ...string) ([]model.FileEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var added []model.FileEntry
	var errs []error

	for _, p := range paths {
		if p == "" {
			continue
		}
		path := filepath.Clean(p)
		if _, exists := c.index[path]; exists {
			c.log.Debug().Str("path", path).Msg("already in list")
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			c.log.Warn().Err(err).Str("path", path).Msg("could not add file")
			errs = append(errs, model.NewIOError("add", path, err))
			continue
		}
		if info.IsDir() {
			errs = append(errs, model.NewIOError("add", path, errors.New("is a directory")))
			continue
		}

		entry := model.NewFileEntry(path, info.Size(), info.ModTime())
		c.entries = append(c.entries, entry)
		c.index[path] = struct{}{}
		added = append(added, entry)
	}

	if len(added) > 0 {
		c.log.Info().Int("added", len(added)).Int("total", len(c.entries)).Msg("files added")
	}
	return added, errors.Join(errs...)
}

// AddDirectory recursively adds every PDF under root, in lexical walk order
func (c *Collection) AddDirectory(root string) ([]model.FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, model.NewIOError("scan", root, err)
	}
	if !info.IsDir() {
		return nil, model.NewIOError("scan", root, errors.New("not a directory"))
	}

	var found []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			c.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && platform.IsPDFName(d.Name()) {
			found = append(found, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, model.NewIOError("scan", root, walkErr)
	}

	c.log.Debug().Str("root", root).Int("found", len(found)).Msg("directory scanned")
	return c.Add(found...)
}

// Remove drops exactly the given paths, keeping the order of the rest
func (c *Collection) Remove(paths ...string) error {
	if len(paths) == 0 {
		return model.ErrNoSelection
	}

	selected := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		selected[filepath.Clean(p)] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.entries[:0]
	for _, e := range c.entries {
		if _, ok := selected[e.Path]; ok {
			delete(c.index, e.Path)
			continue
		}
		kept = append(kept, e)
	}
	// clear the tail so removed entries are not retained by the backing array
	for i := len(kept); i < len(c.entries); i++ {
		c.entries[i] = model.FileEntry{}
	}
	c.entries = kept
	return nil
}

// Clear removes all entries
func (c *Collection) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	c.index = make(map[string]struct{})
}

// MoveUp swaps the entry at index with its predecessor and returns its new
// index. At the top it is a no-op.
func (c *Collection) MoveUp(index int) (int, error) {
	return c.move(index, -1)
}

// MoveDown swaps the entry at index with its successor and returns its new
// index. At the bottom it is a no-op.
func (c *Collection) MoveDown(index int) (int, error) {
	return c.move(index, 1)
}

func (c *Collection) move(index, delta int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.entries) {
		return index, model.ErrNoSelection
	}
	target := index + delta
	if target < 0 || target >= len(c.entries) {
		return index, nil
	}
	c.entries[index], c.entries[target] = c.entries[target], c.entries[index]
	return target, nil
}

// Entries returns a snapshot of the entries in merge order
func (c *Collection) Entries() []model.FileEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.FileEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Paths returns a snapshot of the paths in merge order
func (c *Collection) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Path
	}
	return out
}

// Len returns the number of entries
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TotalSize returns the summed size of all entries in bytes
func (c *Collection) TotalSize() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total int64
	for _, e := range c.entries {
		total += e.SizeBytes
	}
	return total
}
