package config

import (
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"

	"github.com/ytget/pdf-merger/internal/logger"
	"github.com/ytget/pdf-merger/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir          = "output_directory"
	KeyOutputName         = "output_file_name"
	KeyLanguage           = "app_language"
	KeyLogLevel           = "log_level"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyStrictValidation   = "strict_validation"
)

// Default values
const (
	DefaultOutputName         = "merged.pdf"
	DefaultLanguage           = "system"
	DefaultLogLevel           = "info"
	DefaultAutoRevealComplete = false
	DefaultStrictValidation   = false
)

// Settings reads application configuration from the Fyne preferences store.
// Nothing is ever written back: changes made while the app runs are kept in
// memory for the session only.
type Settings struct {
	app fyne.App

	mu        sync.RWMutex
	overrides map[string]any
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{
		app:       app,
		overrides: make(map[string]any),
	}
}

func (s *Settings) override(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.overrides[key]
	return v, ok
}

func (s *Settings) setOverride(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[key] = value
}

func (s *Settings) stringValue(key, fallback string) string {
	if v, ok := s.override(key); ok {
		return v.(string)
	}
	value := s.app.Preferences().StringWithFallback(key, fallback)
	if value == "" {
		return fallback
	}
	return value
}

func (s *Settings) boolValue(key string, fallback bool) bool {
	if v, ok := s.override(key); ok {
		return v.(bool)
	}
	return s.app.Preferences().BoolWithFallback(key, fallback)
}

// GetOutputDirectory returns the directory the merged file goes to by default
func (s *Settings) GetOutputDirectory() string {
	return s.stringValue(KeyOutputDir, platform.DefaultOutputDirectory())
}

// SetOutputDirectory changes the output directory for this session
func (s *Settings) SetOutputDirectory(dir string) {
	s.setOverride(KeyOutputDir, dir)
}

// GetOutputName returns the default merged file name, always ending in .pdf
func (s *Settings) GetOutputName() string {
	return platform.EnsurePDFExtension(s.stringValue(KeyOutputName, DefaultOutputName))
}

// GetOutputPath returns the default output path
func (s *Settings) GetOutputPath() string {
	return filepath.Join(s.GetOutputDirectory(), s.GetOutputName())
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.stringValue(KeyLanguage, DefaultLanguage)
}

// SetLanguage changes the language for this session
func (s *Settings) SetLanguage(lang string) {
	s.setOverride(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetLogLevel returns the configured zerolog level
func (s *Settings) GetLogLevel() zerolog.Level {
	return logger.ParseLevel(s.stringValue(KeyLogLevel, DefaultLogLevel))
}

// GetAutoRevealOnComplete returns whether to reveal the merged file after success
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.boolValue(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete changes the auto-reveal option for this session
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.setOverride(KeyAutoRevealComplete, autoReveal)
}

// GetStrictValidation returns whether inputs are validated in pdfcpu's strict mode
func (s *Settings) GetStrictValidation() bool {
	return s.boolValue(KeyStrictValidation, DefaultStrictValidation)
}
