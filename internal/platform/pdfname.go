package platform

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// PDFPattern matches PDF file names once lower-cased
const PDFPattern = "*.pdf"

// PDFExtension is the extension appended to output names lacking one
const PDFExtension = ".pdf"

// NameMatcher matches base file names against a glob pattern, ignoring case
type NameMatcher struct {
	pattern string
	g       glob.Glob
}

// NewNameMatcher compiles a case-insensitive matcher for pattern
func NewNameMatcher(pattern string) (*NameMatcher, error) {
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return &NameMatcher{pattern: pattern, g: g}, nil
}

// Pattern returns the pattern the matcher was built from
func (m *NameMatcher) Pattern() string {
	return m.pattern
}

// Match reports whether the base name of path matches
func (m *NameMatcher) Match(path string) bool {
	return m.g.Match(strings.ToLower(filepath.Base(path)))
}

var pdfMatcher = mustNameMatcher(PDFPattern)

func mustNameMatcher(pattern string) *NameMatcher {
	m, err := NewNameMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// IsPDFName reports whether path has a PDF extension, in any letter case
func IsPDFName(path string) bool {
	return pdfMatcher.Match(path)
}

// EnsurePDFExtension appends ".pdf" when name has no PDF extension
func EnsurePDFExtension(name string) string {
	if name == "" || IsPDFName(name) {
		return name
	}
	return name + PDFExtension
}
