package domain

// AnswerNotFound is the answer returned when retrieval produces no
// results. The generation backend is never invoked with empty context.
const AnswerNotFound = "No relevant documents found."

// SearchResult represents a single retrieved chunk.
type SearchResult struct {
	// Content is the chunk text.
	Content string `json:"content"`

	// Metadata is the chunk metadata (source, chunk_index, page_numbers, ...).
	Metadata map[string]any `json:"metadata"`

	// Score is the similarity in [-1, 1]; inner product of unit vectors,
	// higher is more similar.
	Score float64 `json:"score"`

	// Rank is the 1-based position in the returned ordering.
	Rank int `json:"rank"`
}

// QueryOptions configures a retrieval query.
type QueryOptions struct {
	// TopK is the maximum number of chunks to retrieve (default 5).
	TopK int

	// Debug requests query-processing details in the result.
	Debug bool
}

// QueryDebug holds query-processing details returned in debug mode.
type QueryDebug struct {
	// Query is the original question.
	Query string `json:"query"`

	// PreparedQuery is the provider-prefixed form actually embedded.
	PreparedQuery string `json:"prepared_query"`

	// Embedding is the query vector.
	Embedding []float32 `json:"embedding"`

	// Dimension is the embedding vector size.
	Dimension int `json:"dimension"`
}

// QueryResult is the answer surface of a retrieval query.
type QueryResult struct {
	// Answer is the generated answer, AnswerNotFound when retrieval was
	// empty, or "" when no generation backend is configured.
	Answer string `json:"answer,omitempty"`

	// Results are the retrieved chunks in rank order.
	Results []SearchResult `json:"results"`

	// Sources are the metadata of the retrieved chunks, in rank order.
	Sources []map[string]any `json:"sources"`

	// Debug is present only when requested via QueryOptions.Debug.
	Debug *QueryDebug `json:"debug,omitempty"`
}

// IngestResult summarises a completed ingestion.
type IngestResult struct {
	// DocumentID is the ID of the ingested document.
	DocumentID string `json:"document_id"`

	// ChunkCount is the number of chunks added to the index.
	ChunkCount int `json:"chunk_count"`

	// IndexSize is the total number of index entries after ingestion.
	IndexSize int `json:"index_size"`
}
