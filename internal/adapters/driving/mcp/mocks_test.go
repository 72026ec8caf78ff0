package mcp

import (
	"context"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	queryResult  *domain.QueryResult
	ingestResult *domain.IngestResult
	err          error
	lastQuestion string
	lastDoc      *domain.Document
}

func (m *mockRetrievalService) Ingest(_ context.Context, doc *domain.Document) (*domain.IngestResult, error) {
	m.lastDoc = doc
	return m.ingestResult, m.err
}

func (m *mockRetrievalService) Query(_ context.Context, question string, _ domain.QueryOptions) (*domain.QueryResult, error) {
	m.lastQuestion = question
	return m.queryResult, m.err
}

func (m *mockRetrievalService) IndexSize() int {
	return 0
}

func (m *mockRetrievalService) Close() error {
	return nil
}

// mockExtractor is a mock implementation of driven.Extractor.
type mockExtractor struct {
	doc *domain.Document
	err error
}

func (m *mockExtractor) Extract(_ context.Context, _ string) (*domain.Document, error) {
	return m.doc, m.err
}
