// Package driving provides interfaces for application entry points
// (primary/inbound ports).
package driving

import (
	"context"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

// RetrievalService is the application core: it ingests documents into
// the vector index and answers queries against it.
//
// Instances are caller-owned with an explicit lifecycle:
// construct, then any number of Ingest/Query calls, then Close.
type RetrievalService interface {
	// Ingest chunks the document, attributes chunk pages, embeds the
	// chunk texts in one batched call, adds them to the index and
	// persists it. A document with no content is a successful no-op.
	//
	// Persistence failure is returned as an error, but the chunks stay
	// searchable in memory; ingestion success and persistence success
	// are reported together through the error and must be checked.
	Ingest(ctx context.Context, doc *domain.Document) (*domain.IngestResult, error)

	// Query embeds the question, retrieves the top-k chunks and, when a
	// generation backend is configured, delegates (question, context)
	// to it. Zero retrieved chunks is a valid terminal outcome.
	Query(ctx context.Context, question string, opts domain.QueryOptions) (*domain.QueryResult, error)

	// IndexSize returns the number of entries currently indexed.
	IndexSize() int

	// Close releases the embedding, generation and storage resources.
	Close() error
}
