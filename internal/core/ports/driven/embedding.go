package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: this is separate from VectorIndex, which stores and searches
// vectors. EmbeddingService generates vectors; VectorIndex stores them.
//
// Providers may apply a model-specific instruction prefix to the input
// (E5-family models distinguish "query" from "passage" framing). That is
// a provider capability, not orchestrator logic; PrepareQuery exposes the
// prefixed form for debugging.
type EmbeddingService interface {
	// EmbedBatch generates passage embeddings for multiple texts in one
	// provider call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates the embedding for a search query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// PrepareQuery returns the provider-prefixed form of a query, as it
	// would be embedded. Providers without instruction prefixes return
	// the text unchanged.
	PrepareQuery(text string) string

	// Dimensions returns the embedding vector size (e.g. 384, 768, 1536).
	// This must match the VectorIndex dimension.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
