// Package testutil provides helpers shared by package tests: minimal PDF
// documents with recognizable page sizes and small file fixtures.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// PageSize is a media box width and height in points
type PageSize struct {
	Width  float64
	Height float64
}

// Common page sizes used to tell inputs apart after a merge
var (
	SizeA = PageSize{Width: 200, Height: 200}
	SizeB = PageSize{Width: 300, Height: 300}
	SizeC = PageSize{Width: 400, Height: 250}
)

// MinimalPDF builds a well-formed PDF with one page per size
func MinimalPDF(sizes ...PageSize) []byte {
	if len(sizes) == 0 {
		sizes = []PageSize{SizeA}
	}

	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	// 1: catalog, 2: page tree, then a page and content stream per size
	kids := make([]byte, 0, len(sizes)*8)
	for i := range sizes {
		kids = fmt.Appendf(kids, "%d 0 R ", 3+2*i)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", bytes.TrimSpace(kids), len(sizes)))

	for i, s := range sizes {
		content := fmt.Sprintf("0 0 m %.0f %.0f l S", s.Width, s.Height)
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.0f %.0f] /Resources << >> /Contents %d 0 R >>",
			s.Width, s.Height, 4+2*i))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

// WritePDF writes a minimal PDF named name into dir and returns its path
func WritePDF(t testing.TB, dir, name string, sizes ...PageSize) string {
	t.Helper()
	return WriteFile(t, dir, name, MinimalPDF(sizes...))
}

// WriteFile writes data to dir/name, creating parent directories
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
