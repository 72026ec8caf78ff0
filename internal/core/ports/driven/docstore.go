package driven

import (
	"context"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

// DocumentStore is the catalogue of ingested documents.
// This is an optional service - when nil, ingestion is not recorded.
type DocumentStore interface {
	// Save stores or updates a document record.
	Save(ctx context.Context, record domain.DocumentRecord) error

	// Get retrieves a record by document ID.
	// Returns domain.ErrNotFound if no record exists.
	Get(ctx context.Context, id string) (*domain.DocumentRecord, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]domain.DocumentRecord, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
