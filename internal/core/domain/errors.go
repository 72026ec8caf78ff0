package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedModel indicates an unknown embedding model name.
	// Fatal at construction; there is no per-call recovery.
	ErrUnsupportedModel = errors.New("unsupported embedding model")

	// ErrUnsupportedProvider indicates an unknown provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrDimensionMismatch indicates a vector does not match the index
	// dimension, or the embedding provider and index disagree on dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrZeroVector indicates a vector with zero Euclidean norm.
	// Normalizing one would divide by zero, so it is rejected.
	ErrZeroVector = errors.New("zero vector cannot be normalized")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Retrieval is impossible without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationUnavailable indicates the generation backend is not
	// configured or not reachable. Queries degrade to search-only results.
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrIndexPersistence indicates the index could not be written to disk.
	// The in-memory index remains intact and searchable.
	ErrIndexPersistence = errors.New("index persistence failed")
)
