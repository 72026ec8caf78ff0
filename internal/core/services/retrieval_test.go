package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leafra-ai/LeafraSDK/internal/adapters/driven/index/flat"
	"github.com/Leafra-ai/LeafraSDK/internal/chunker"
	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

// fakeEmbedder returns registered vectors by text, defaulting to a
// fixed unit vector for unregistered texts.
type fakeEmbedder struct {
	dim        int
	vectors    map[string][]float32
	batchCalls int
	closed     bool
}

func newFakeEmbedder(dim int) *fakeEmbedder {
	return &fakeEmbedder{dim: dim, vectors: make(map[string][]float32)}
}

func (f *fakeEmbedder) vector(text string) []float32 {
	if v, ok := f.vectors[text]; ok {
		return v
	}
	v := make([]float32, f.dim)
	v[0] = 1
	return v
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = f.vector(text)
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return f.vector(text), nil
}

func (f *fakeEmbedder) PrepareQuery(text string) string { return "query: " + text }
func (f *fakeEmbedder) Dimensions() int                 { return f.dim }
func (f *fakeEmbedder) ModelName() string               { return "fake-embedder" }
func (f *fakeEmbedder) Ping(context.Context) error      { return nil }
func (f *fakeEmbedder) Close() error                    { f.closed = true; return nil }

// fakeGenerator records the last prompt inputs.
type fakeGenerator struct {
	answer       string
	err          error
	lastQuestion string
	lastContext  string
}

func (f *fakeGenerator) Generate(_ context.Context, question, contextBlock string) (string, error) {
	f.lastQuestion = question
	f.lastContext = contextBlock
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeGenerator) ModelName() string          { return "fake-generator" }
func (f *fakeGenerator) Ping(context.Context) error { return nil }
func (f *fakeGenerator) Close() error               { return nil }

func newTestService(t *testing.T, cfg RetrievalConfig) *RetrievalService {
	t.Helper()

	if cfg.Embedder == nil {
		cfg.Embedder = newFakeEmbedder(3)
	}
	if cfg.Index == nil {
		index, err := flat.New(3)
		require.NoError(t, err)
		cfg.Index = index
	}

	svc, err := NewRetrievalService(cfg)
	require.NoError(t, err)
	return svc
}

func TestNewRetrievalService_RequiresEmbedder(t *testing.T) {
	index, err := flat.New(3)
	require.NoError(t, err)

	_, err = NewRetrievalService(RetrievalConfig{Index: index})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewRetrievalService_RequiresIndex(t *testing.T) {
	_, err := NewRetrievalService(RetrievalConfig{Embedder: newFakeEmbedder(3)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewRetrievalService_DimensionMismatch(t *testing.T) {
	index, err := flat.New(4)
	require.NoError(t, err)

	_, err = NewRetrievalService(RetrievalConfig{
		Embedder: newFakeEmbedder(3),
		Index:    index,
	})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestIngest_EmptyDocumentIsNoOp(t *testing.T) {
	svc := newTestService(t, RetrievalConfig{})

	result, err := svc.Ingest(context.Background(), &domain.Document{ID: "doc-1"})
	require.NoError(t, err)
	assert.Equal(t, "doc-1", result.DocumentID)
	assert.Equal(t, 0, result.ChunkCount)
	assert.Equal(t, 0, result.IndexSize)
}

func TestIngest_NilDocument(t *testing.T) {
	svc := newTestService(t, RetrievalConfig{})

	_, err := svc.Ingest(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngest_ChunksAndIndexes(t *testing.T) {
	embedder := newFakeEmbedder(3)
	svc := newTestService(t, RetrievalConfig{
		Embedder: embedder,
		Chunker:  chunker.New(chunker.WithChunkSize(40), chunker.WithOverlap(10)),
	})

	doc := &domain.Document{
		ID:       "doc-1",
		Source:   "/docs/cats.pdf",
		Content:  "The cat sat on the mat. The dog barked at the postman all morning long.",
		Metadata: map[string]any{"source": "cats.pdf"},
	}

	result, err := svc.Ingest(context.Background(), doc)
	require.NoError(t, err)
	assert.Greater(t, result.ChunkCount, 1)
	assert.Equal(t, result.ChunkCount, result.IndexSize)
	assert.Equal(t, result.IndexSize, svc.IndexSize())
	assert.Equal(t, 1, embedder.batchCalls)
}

func TestIngest_ChunkMetadataCarriesPageAttribution(t *testing.T) {
	svc := newTestService(t, RetrievalConfig{
		Chunker: chunker.New(chunker.WithChunkSize(40), chunker.WithOverlap(0)),
	})

	doc := &domain.Document{
		ID:      "doc-1",
		Content: "The cat sat on the mat.",
		Pages: []domain.PageText{
			{PageNumber: 1, Text: "The cat sat on the mat. More page text."},
			{PageNumber: 2, Text: "Entirely different material."},
		},
		Metadata: map[string]any{"source": "cats.pdf"},
	}

	_, err := svc.Ingest(context.Background(), doc)
	require.NoError(t, err)

	// The single chunk is the whole content and is a substring of page 1.
	results, err := svc.Query(context.Background(), "cats", domain.QueryOptions{TopK: 1})
	require.NoError(t, err)
	require.Len(t, results.Results, 1)

	metadata := results.Results[0].Metadata
	assert.Equal(t, "cats.pdf", metadata["source"])
	assert.Equal(t, 0, metadata["chunk_index"])
	assert.Equal(t, 1, metadata["chunk_count"])
	assert.Equal(t, []int{1}, metadata["page_numbers"])
	assert.Equal(t, 1, metadata["primary_page"])
}

func TestIngest_PersistsIndex(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "rag_index_fake-embedder")

	svc := newTestService(t, RetrievalConfig{IndexPath: indexPath})

	_, err := svc.Ingest(context.Background(), &domain.Document{
		ID:      "doc-1",
		Content: "some content to index",
	})
	require.NoError(t, err)

	_, err = os.Stat(indexPath + ".vec")
	assert.NoError(t, err)
	_, err = os.Stat(indexPath + ".json")
	assert.NoError(t, err)

	// A fresh service over the same path restores the entries.
	restored := newTestService(t, RetrievalConfig{IndexPath: indexPath})
	assert.Equal(t, svc.IndexSize(), restored.IndexSize())
}

func TestIngest_PersistenceFailureKeepsMemory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	// The path prefix nests under a regular file, so Save must fail.
	svc := newTestService(t, RetrievalConfig{
		IndexPath: filepath.Join(blocker, "prefix"),
	})

	result, err := svc.Ingest(context.Background(), &domain.Document{
		ID:      "doc-1",
		Content: "some content to index",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIndexPersistence)

	// Partial result is returned and the chunks remain searchable.
	require.NotNil(t, result)
	assert.Equal(t, 1, result.ChunkCount)
	assert.Equal(t, 1, svc.IndexSize())
}

func TestQuery_EmptyQuestion(t *testing.T) {
	svc := newTestService(t, RetrievalConfig{})

	_, err := svc.Query(context.Background(), "   ", domain.QueryOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuery_EmptyIndexReturnsNotFound(t *testing.T) {
	generator := &fakeGenerator{answer: "should not be called"}
	svc := newTestService(t, RetrievalConfig{Generator: generator})

	result, err := svc.Query(context.Background(), "anything", domain.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerNotFound, result.Answer)
	assert.Empty(t, result.Results)
	assert.Empty(t, generator.lastQuestion, "generator must not run with empty context")
}

func TestQuery_SearchOnlyWithoutGenerator(t *testing.T) {
	embedder := newFakeEmbedder(3)
	embedder.vectors["alpha beta"] = []float32{1, 0, 0}
	embedder.vectors["gamma delta"] = []float32{0, 1, 0}
	embedder.vectors["about alpha"] = []float32{1, 0, 0}

	svc := newTestService(t, RetrievalConfig{
		Embedder: embedder,
		Chunker:  chunker.New(chunker.WithChunkSize(400), chunker.WithOverlap(0)),
	})

	ctx := context.Background()
	_, err := svc.Ingest(ctx, &domain.Document{ID: "a", Content: "alpha beta"})
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, &domain.Document{ID: "b", Content: "gamma delta"})
	require.NoError(t, err)

	result, err := svc.Query(ctx, "about alpha", domain.QueryOptions{TopK: 2})
	require.NoError(t, err)
	assert.Empty(t, result.Answer)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "alpha beta", result.Results[0].Content)
	assert.Equal(t, 1, result.Results[0].Rank)
	assert.InDelta(t, 1.0, result.Results[0].Score, 1e-6)
	assert.Len(t, result.Sources, 2)
}

func TestQuery_GeneratesAnswerFromContext(t *testing.T) {
	generator := &fakeGenerator{answer: "The cat sat on the mat."}
	svc := newTestService(t, RetrievalConfig{Generator: generator})

	ctx := context.Background()
	_, err := svc.Ingest(ctx, &domain.Document{ID: "a", Content: "The cat sat on the mat."})
	require.NoError(t, err)

	result, err := svc.Query(ctx, "where did the cat sit?", domain.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, "The cat sat on the mat.", result.Answer)
	assert.Equal(t, "where did the cat sit?", generator.lastQuestion)
	assert.Contains(t, generator.lastContext, "[Source 1]: The cat sat on the mat.")
}

func TestQuery_GenerationFailureDegradesToSearchOnly(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("backend down")}
	svc := newTestService(t, RetrievalConfig{Generator: generator})

	ctx := context.Background()
	_, err := svc.Ingest(ctx, &domain.Document{ID: "a", Content: "some indexed content"})
	require.NoError(t, err)

	result, err := svc.Query(ctx, "question", domain.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Answer)
	require.Len(t, result.Results, 1)
}

func TestQuery_DebugDetails(t *testing.T) {
	svc := newTestService(t, RetrievalConfig{})

	ctx := context.Background()
	_, err := svc.Ingest(ctx, &domain.Document{ID: "a", Content: "indexed content"})
	require.NoError(t, err)

	result, err := svc.Query(ctx, "question", domain.QueryOptions{Debug: true})
	require.NoError(t, err)
	require.NotNil(t, result.Debug)
	assert.Equal(t, "question", result.Debug.Query)
	assert.Equal(t, "query: question", result.Debug.PreparedQuery)
	assert.Len(t, result.Debug.Embedding, 3)
	assert.Equal(t, 3, result.Debug.Dimension)
}

func TestQuery_DebugOmittedByDefault(t *testing.T) {
	svc := newTestService(t, RetrievalConfig{})

	result, err := svc.Query(context.Background(), "question", domain.QueryOptions{})
	require.NoError(t, err)
	assert.Nil(t, result.Debug)
}

func TestClose_ReleasesDependencies(t *testing.T) {
	embedder := newFakeEmbedder(3)
	svc := newTestService(t, RetrievalConfig{Embedder: embedder})

	require.NoError(t, svc.Close())
	assert.True(t, embedder.closed)
}
