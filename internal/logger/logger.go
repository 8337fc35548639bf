package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Component names used as the "component" field
const (
	ComponentApp        = "app"
	ComponentCollection = "collection"
	ComponentMerge      = "merge"
	ComponentWatch      = "watch"
	ComponentUI         = "ui"
)

// New creates a timestamped logger writing to w at the given level
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewConsole creates a human-friendly logger on stderr
func NewConsole(level zerolog.Level) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

// ParseLevel parses a level name, falling back to info for unknown values
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// For returns a sub-logger tagged with the component name
func For(log zerolog.Logger, component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
