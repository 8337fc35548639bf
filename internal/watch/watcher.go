// Package watch reports PDF files that appear in watched directories.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/ytget/pdf-merger/internal/platform"
)

// EventBufferSize is the capacity of the Events channel
const EventBufferSize = 32

var (
	// ErrAlreadyRunning is returned by Start on a running watcher
	ErrAlreadyRunning = errors.New("watcher already running")
	// ErrClosed is returned by Start after Close
	ErrClosed = errors.New("watcher closed")
)

// Watcher monitors directories with fsnotify and emits the path of every PDF
// created in or moved into one of them
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	matcher   *platform.NameMatcher
	events    chan string
	log       zerolog.Logger

	mu          sync.RWMutex
	directories []string
	running     bool
	done        chan struct{}
	closeOnce   sync.Once
}

// New creates a watcher that is not watching anything yet
func New(log zerolog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	matcher, err := platform.NewNameMatcher(platform.PDFPattern)
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		matcher:   matcher,
		events:    make(chan string, EventBufferSize),
		log:       log,
		done:      make(chan struct{}),
	}, nil
}

// Watch adds dir to the watched set
func (w *Watcher) Watch(dir string) error {
	dir = filepath.Clean(dir)

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, existing := range w.directories {
		if existing == dir {
			return nil
		}
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.directories = append(w.directories, dir)

	w.log.Info().Str("directory", dir).Msg("watching directory")
	return nil
}

// Directories returns the watched directories
func (w *Watcher) Directories() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	dirs := make([]string, len(w.directories))
	copy(dirs, w.directories)
	return dirs
}

// Events delivers the cleaned path of each new PDF. The channel is closed
// once the event loop exits.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Start runs the event loop until ctx is done or Close is called
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.done:
		return ErrClosed
	default:
	}
	if w.running {
		return ErrAlreadyRunning
	}
	w.running = true

	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if path, ok := w.accept(ev); ok {
				select {
				case w.events <- path:
				default:
					w.log.Warn().Str("path", path).Msg("event channel is full, dropped event")
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("fsnotify watcher error")

		case <-ctx.Done():
			w.Close()
			return

		case <-w.done:
			return
		}
	}
}

// accept reports whether ev names a regular PDF file that just appeared
func (w *Watcher) accept(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) {
		return "", false
	}
	path := filepath.Clean(ev.Name)
	if !w.matcher.Match(path) {
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil {
		// removed again before we got to it
		if !os.IsNotExist(err) {
			w.log.Error().Err(err).Str("path", path).Msg("error stating file")
		}
		return "", false
	}
	if info.IsDir() {
		return "", false
	}
	return path, true
}

// Close stops the event loop and releases the fsnotify watcher
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		close(w.done)
		if !w.running {
			// no loop to close it
			close(w.events)
		}
		w.running = false
		w.mu.Unlock()

		err = w.fsWatcher.Close()
		w.log.Info().Msg("watcher stopped")
	})
	return err
}
