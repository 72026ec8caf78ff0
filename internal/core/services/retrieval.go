// Package services contains the application core wired between the
// driving and driven ports.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Leafra-ai/LeafraSDK/internal/attribution"
	"github.com/Leafra-ai/LeafraSDK/internal/chunker"
	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
	"github.com/Leafra-ai/LeafraSDK/internal/core/ports/driven"
	"github.com/Leafra-ai/LeafraSDK/internal/core/ports/driving"
	"github.com/Leafra-ai/LeafraSDK/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultTopK is the number of chunks retrieved when the caller
// doesn't specify one.
const DefaultTopK = 5

// RetrievalService orchestrates ingestion and querying.
//
// The generation service and document store are optional: without a
// generator, queries return ranked results only; without a store,
// ingestion is not catalogued.
type RetrievalService struct {
	embedder  driven.EmbeddingService
	generator driven.GenerationService
	index     driven.VectorIndex
	docStore  driven.DocumentStore
	chunker   *chunker.Chunker
	indexPath string
	topK      int
}

// RetrievalConfig bundles the dependencies of the retrieval service.
type RetrievalConfig struct {
	// Embedder generates chunk and query embeddings (required).
	Embedder driven.EmbeddingService

	// Generator produces answers from retrieved context (optional).
	Generator driven.GenerationService

	// Index is the vector index (required).
	Index driven.VectorIndex

	// DocStore catalogues ingested documents (optional).
	DocStore driven.DocumentStore

	// Chunker splits document content; nil uses the defaults.
	Chunker *chunker.Chunker

	// IndexPath is the path prefix for index persistence. Empty
	// disables persistence.
	IndexPath string

	// TopK is the default retrieval depth; zero uses DefaultTopK.
	TopK int
}

// NewRetrievalService creates the retrieval service and restores any
// previously persisted index from cfg.IndexPath.
func NewRetrievalService(cfg RetrievalConfig) (*RetrievalService, error) {
	if cfg.Embedder == nil {
		return nil, fmt.Errorf("%w: embedding service is required", domain.ErrInvalidInput)
	}
	if cfg.Index == nil {
		return nil, fmt.Errorf("%w: vector index is required", domain.ErrInvalidInput)
	}
	if cfg.Embedder.Dimensions() != cfg.Index.Dimension() {
		return nil, fmt.Errorf("%w: embedder produces %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, cfg.Embedder.Dimensions(), cfg.Index.Dimension())
	}

	if cfg.Chunker == nil {
		cfg.Chunker = chunker.New()
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}

	s := &RetrievalService{
		embedder:  cfg.Embedder,
		generator: cfg.Generator,
		index:     cfg.Index,
		docStore:  cfg.DocStore,
		chunker:   cfg.Chunker,
		indexPath: cfg.IndexPath,
		topK:      cfg.TopK,
	}

	if s.indexPath != "" {
		if err := s.index.Load(s.indexPath); err != nil {
			return nil, fmt.Errorf("loading index: %w", err)
		}
		logger.Debug("Index loaded from %s: %d entries", s.indexPath, s.index.Len())
	}

	return s, nil
}

// Ingest chunks, attributes, embeds and indexes a document, then
// persists the index.
func (s *RetrievalService) Ingest(ctx context.Context, doc *domain.Document) (*domain.IngestResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}

	logger.Section("Ingestion")
	logger.Debug("Document: %s (%s)", doc.ID, doc.Source)

	texts := s.chunker.Split(doc.Content)
	if len(texts) == 0 {
		logger.Info("Document %s has no content, nothing to ingest", doc.ID)
		return &domain.IngestResult{
			DocumentID: doc.ID,
			ChunkCount: 0,
			IndexSize:  s.index.Len(),
		}, nil
	}
	logger.Debug("Split into %d chunks (size=%d, overlap=%d)",
		len(texts), s.chunker.ChunkSize(), s.chunker.Overlap())

	chunks := s.buildChunks(doc, texts)

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}
	logger.Debug("Embedded %d chunks", len(embeddings))

	if err := s.index.Add(chunks, embeddings); err != nil {
		return nil, fmt.Errorf("indexing chunks: %w", err)
	}
	logger.Info("Indexed %d chunks, index size now %d", len(chunks), s.index.Len())

	result := &domain.IngestResult{
		DocumentID: doc.ID,
		ChunkCount: len(chunks),
		IndexSize:  s.index.Len(),
	}

	s.recordDocument(ctx, doc, len(chunks))

	// Persist last: a failure here leaves the chunks searchable in
	// memory, and the caller decides whether that is acceptable.
	if s.indexPath != "" {
		if err := s.index.Save(s.indexPath); err != nil {
			return result, fmt.Errorf("persisting index: %w", err)
		}
		logger.Debug("Index persisted to %s", s.indexPath)
	}

	return result, nil
}

// buildChunks pairs chunk texts with page attribution and metadata.
func (s *RetrievalService) buildChunks(doc *domain.Document, texts []string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(texts))
	attributed := 0

	for i, text := range texts {
		chunk := domain.Chunk{
			Content: text,
			Index:   i,
			Count:   len(texts),
		}

		if len(doc.Pages) > 0 {
			chunk.PageNumbers = attribution.Pages(text, doc.Pages)
			if len(chunk.PageNumbers) > 0 {
				attributed++
			}
		}

		metadata := make(map[string]any, len(doc.Metadata)+4)
		for k, v := range doc.Metadata {
			metadata[k] = v
		}
		metadata["chunk_index"] = i
		metadata["chunk_count"] = len(texts)
		if len(chunk.PageNumbers) > 0 {
			metadata["page_numbers"] = chunk.PageNumbers
			metadata["primary_page"] = chunk.PrimaryPage()
		}
		chunk.Metadata = metadata

		chunks[i] = chunk
	}

	if len(doc.Pages) > 0 {
		logger.Debug("Page attribution: %d/%d chunks attributed", attributed, len(texts))
	}

	return chunks
}

// recordDocument catalogues the ingestion; failures are logged, not fatal.
func (s *RetrievalService) recordDocument(ctx context.Context, doc *domain.Document, chunkCount int) {
	if s.docStore == nil {
		return
	}

	now := time.Now().UTC()
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	record := domain.DocumentRecord{
		ID:         doc.ID,
		Source:     doc.Source,
		Title:      doc.Title,
		PageCount:  len(doc.Pages),
		ChunkCount: chunkCount,
		Metadata:   doc.Metadata,
		CreatedAt:  createdAt,
		UpdatedAt:  now,
	}

	if err := s.docStore.Save(ctx, record); err != nil {
		logger.Warn("Recording document %s failed: %v", doc.ID, err)
	}
}

// Query embeds the question, retrieves the top-k chunks and, when a
// generation backend is available, produces an answer grounded in them.
func (s *RetrievalService) Query(ctx context.Context, question string, opts domain.QueryOptions) (*domain.QueryResult, error) {
	logger.Section("Query")
	logger.Debug("Question: %q", question)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	k := opts.TopK
	if k <= 0 {
		k = s.topK
	}
	logger.Debug("Top-k: %d, index size: %d", k, s.index.Len())

	embedding, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := s.index.Search(embedding, k)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(results))

	sources := make([]map[string]any, len(results))
	for i, r := range results {
		sources[i] = r.Metadata
	}

	result := &domain.QueryResult{
		Results: results,
		Sources: sources,
	}

	if opts.Debug {
		result.Debug = &domain.QueryDebug{
			Query:         question,
			PreparedQuery: s.embedder.PrepareQuery(question),
			Embedding:     embedding,
			Dimension:     s.embedder.Dimensions(),
		}
	}

	if len(results) == 0 {
		logger.Info("No results for query")
		result.Answer = domain.AnswerNotFound
		return result, nil
	}

	if s.generator == nil {
		logger.Debug("No generation backend, returning ranked results only")
		return result, nil
	}

	answer, err := s.generate(ctx, question, results)
	if err != nil {
		// Degrade to search-only rather than failing the query.
		logger.Warn("Generation failed, returning results without answer: %v", err)
		return result, nil
	}
	result.Answer = answer

	return result, nil
}

// generate builds the context block and delegates to the generation
// backend.
func (s *RetrievalService) generate(ctx context.Context, question string, results []domain.SearchResult) (string, error) {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("[Source %d]: %s", i+1, r.Content)
	}
	contextBlock := strings.Join(parts, "\n\n")

	logger.Debug("Generating answer with %s from %d sources",
		s.generator.ModelName(), len(results))

	return s.generator.Generate(ctx, question, contextBlock)
}

// IndexSize returns the number of entries currently indexed.
func (s *RetrievalService) IndexSize() int {
	return s.index.Len()
}

// Close releases the embedding, generation and storage resources.
func (s *RetrievalService) Close() error {
	var errs []string

	if err := s.embedder.Close(); err != nil {
		errs = append(errs, fmt.Sprintf("embedder: %v", err))
	}
	if s.generator != nil {
		if err := s.generator.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("generator: %v", err))
		}
	}
	if s.docStore != nil {
		if err := s.docStore.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("document store: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("closing retrieval service: %s", strings.Join(errs, "; "))
	}
	return nil
}
