// Package flat provides an exact, in-memory vector index with file
// persistence. Search is brute-force inner product over every stored
// vector; vectors are L2-normalized on insertion so scores are cosine
// similarities in [-1, 1].
package flat

import (
	"fmt"
	"math"
	"sort"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
	"github.com/Leafra-ai/LeafraSDK/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry bundles one stored vector with its chunk content and metadata.
// Keeping the three as one record removes any cross-array alignment to
// maintain by hand.
type entry struct {
	vector   []float32
	content  string
	metadata map[string]any
}

// Index is a flat inner-product vector index.
//
// It is single-writer: callers must serialize Add, Search, Save and Load
// against the same instance.
type Index struct {
	dimension int
	entries   []entry
}

// New creates an empty index for vectors of exactly the given dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive, got %d",
			domain.ErrInvalidInput, dimension)
	}
	return &Index{dimension: dimension}, nil
}

// Dimension returns the configured vector dimension.
func (i *Index) Dimension() int {
	return i.dimension
}

// Len returns the number of stored entries.
func (i *Index) Len() int {
	return len(i.entries)
}

// Add normalizes and appends vectors with their chunks, preserving input
// order. The index grows monotonically; there is no de-duplication.
func (i *Index) Add(chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d chunks but %d vectors",
			domain.ErrInvalidInput, len(chunks), len(vectors))
	}

	// Validate the whole batch before touching the entries slice, so a
	// bad vector never leaves a partial append behind.
	normalized := make([][]float32, len(vectors))
	for n, v := range vectors {
		if len(v) != i.dimension {
			return fmt.Errorf("%w: vector %d has dimension %d, index expects %d",
				domain.ErrDimensionMismatch, n, len(v), i.dimension)
		}
		nv, err := normalize(v)
		if err != nil {
			return fmt.Errorf("vector %d: %w", n, err)
		}
		normalized[n] = nv
	}

	for n, chunk := range chunks {
		i.entries = append(i.entries, entry{
			vector:   normalized[n],
			content:  chunk.Content,
			metadata: chunk.Metadata,
		})
	}
	return nil
}

// Search returns the top k entries by descending inner product with the
// normalized query, with contiguous 1-based ranks. Ties go to the
// earlier entry. Searching an empty index, or with k < 1, yields empty
// results rather than an error.
func (i *Index) Search(query []float32, k int) ([]domain.SearchResult, error) {
	if len(query) != i.dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index expects %d",
			domain.ErrDimensionMismatch, len(query), i.dimension)
	}
	if len(i.entries) == 0 || k < 1 {
		return []domain.SearchResult{}, nil
	}

	q, err := normalize(query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	order := make([]int, len(i.entries))
	scores := make([]float64, len(i.entries))
	for n := range i.entries {
		order[n] = n
		scores[n] = dot(i.entries[n].vector, q)
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}

	results := make([]domain.SearchResult, 0, k)
	for rank := 1; rank <= k; rank++ {
		n := order[rank-1]
		results = append(results, domain.SearchResult{
			Content:  i.entries[n].content,
			Metadata: i.entries[n].metadata,
			Score:    scores[n],
			Rank:     rank,
		})
	}
	return results, nil
}

// normalize returns v divided by its Euclidean norm.
// A zero vector is rejected rather than producing NaNs.
func normalize(v []float32) ([]float32, error) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return nil, domain.ErrZeroVector
	}

	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for n, x := range v {
		out[n] = float32(float64(x) / norm)
	}
	return out, nil
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float32) float64 {
	var sum float64
	for n := range a {
		sum += float64(a[n]) * float64(b[n])
	}
	return sum
}
