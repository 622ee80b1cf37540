// Package extract reads uploaded Position Description files into raw
// text and watches files for changes. Plain-text formats are handled
// directly; binary formats (PDF, DOCX) belong to an external extraction
// collaborator and are rejected here.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// maxFileSize caps uploads at 10 MB.
const maxFileSize = 10 << 20

// Extractor reads local files into raw text.
type Extractor struct{}

// New creates a file text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the file extensions handled directly.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".md", ".text"}
}

// Extract reads path and returns its text content.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, s := range e.SupportedExtensions() {
		if ext == s {
			supported = true
			break
		}
	}
	if !supported {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > maxFileSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
