package driven

import "github.com/Leafra-ai/LeafraSDK/internal/core/domain"

// VectorIndex stores chunk vectors alongside chunk content and metadata,
// and answers exact nearest-neighbour queries by inner product.
//
// Vectors are L2-normalized on insertion, so inner-product search is
// cosine similarity. The index is single-writer: callers must serialize
// Add, Search and Save against the same instance.
type VectorIndex interface {
	// Add normalizes and appends vectors with their chunks, preserving
	// input order. Requires len(chunks) == len(vectors); every vector
	// must match the index dimension and have non-zero norm.
	Add(chunks []domain.Chunk, vectors [][]float32) error

	// Search returns the top k entries by descending inner product with
	// the normalized query vector, ranked from 1. Ties go to the earlier
	// entry. An empty index yields empty results, not an error.
	Search(query []float32, k int) ([]domain.SearchResult, error)

	// Save persists the index under the given path prefix.
	Save(pathPrefix string) error

	// Load restores a previously saved index from the path prefix.
	// Missing or unreadable artifacts leave the index empty; neither is
	// an error.
	Load(pathPrefix string) error

	// Dimension returns the configured vector dimension.
	Dimension() int

	// Len returns the number of stored entries.
	Len() int
}
