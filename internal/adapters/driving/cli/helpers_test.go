package cli

import (
	"context"
	"time"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

// mockRetrievalService is a swappable driving.RetrievalService.
type mockRetrievalService struct {
	queryResult  *domain.QueryResult
	ingestResult *domain.IngestResult
	err          error
	lastQuestion string
	lastOpts     domain.QueryOptions
}

func (m *mockRetrievalService) Ingest(_ context.Context, _ *domain.Document) (*domain.IngestResult, error) {
	return m.ingestResult, m.err
}

func (m *mockRetrievalService) Query(_ context.Context, question string, opts domain.QueryOptions) (*domain.QueryResult, error) {
	m.lastQuestion = question
	m.lastOpts = opts
	return m.queryResult, m.err
}

func (m *mockRetrievalService) IndexSize() int { return 0 }
func (m *mockRetrievalService) Close() error   { return nil }

// mockDocumentStore is a swappable driven.DocumentStore.
type mockDocumentStore struct {
	records []domain.DocumentRecord
	err     error
	deleted []string
}

func (m *mockDocumentStore) Save(_ context.Context, _ domain.DocumentRecord) error {
	return m.err
}

func (m *mockDocumentStore) Get(_ context.Context, id string) (*domain.DocumentRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.records {
		if m.records[i].ID == id {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentStore) List(_ context.Context) ([]domain.DocumentRecord, error) {
	return m.records, m.err
}

func (m *mockDocumentStore) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockDocumentStore) Close() error { return nil }

// mockExtractor is a swappable driven.Extractor.
type mockExtractor struct {
	doc *domain.Document
	err error
}

func (m *mockExtractor) Extract(_ context.Context, _ string) (*domain.Document, error) {
	return m.doc, m.err
}

// setupTestServices injects mocks into the package service vars and
// returns a cleanup that restores the uninitialised state.
func setupTestServices(retrieval *mockRetrievalService, store *mockDocumentStore) func() {
	if retrieval != nil {
		retrievalService = retrieval
	}
	if store != nil {
		documentStore = store
	}
	extractor = &mockExtractor{doc: &domain.Document{ID: "doc-1", Content: "text"}}

	return func() {
		retrievalService = nil
		documentStore = nil
		extractor = nil
		queryTopK = 0
		queryDebug = false
		queryJSON = false
		docsJSON = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}
}

// sampleRecord is a catalogue record fixture.
func sampleRecord(id string) domain.DocumentRecord {
	created, _ := time.Parse(time.RFC3339, "2026-01-15T10:30:00Z")
	return domain.DocumentRecord{
		ID:         id,
		Source:     "/docs/" + id + ".pdf",
		Title:      "Document " + id,
		PageCount:  2,
		ChunkCount: 6,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}
