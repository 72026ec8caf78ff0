package driven

import (
	"context"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

// Extractor produces a page-aware Document from a source file.
// Byte-level parsing is a black box behind this port.
type Extractor interface {
	// Extract reads the file at path and returns the full text together
	// with the per-page text list, in source order.
	Extract(ctx context.Context, path string) (*domain.Document, error)
}
