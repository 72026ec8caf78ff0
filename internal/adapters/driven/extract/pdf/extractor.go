// Package pdf provides page-aware text extraction from PDF files.
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
	"github.com/Leafra-ai/LeafraSDK/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads PDF files into page-aware documents.
type Extractor struct{}

// NewExtractor creates a new PDF extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the PDF at path and returns a document holding the
// full text plus the per-page text list in source order. Pages the
// library cannot decode are skipped rather than failing the whole
// document.
func (e *Extractor) Extract(ctx context.Context, path string) (*domain.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]domain.PageText, 0, numPages)
	var parts []string

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Broken page, keep the rest of the document.
			continue
		}

		pages = append(pages, domain.PageText{PageNumber: i, Text: text})
		parts = append(parts, text)
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return &domain.Document{
		ID:      uuid.New().String(),
		Source:  path,
		Title:   title,
		Content: strings.Join(parts, "\n"),
		Pages:   pages,
		Metadata: map[string]any{
			"source": filepath.Base(path),
			"type":   "pdf",
		},
		CreatedAt: time.Now().UTC(),
	}, nil
}
