package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the indexed documents"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to retrieve (default 5)"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Answer  string              `json:"answer,omitempty"`
	Results []QueryResultOutput `json:"results"`
	Count   int                 `json:"count"`
}

// QueryResultOutput represents a single retrieved chunk.
type QueryResultOutput struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Score    float64        `json:"score"`
	Rank     int            `json:"rank"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Path string `json:"path" jsonschema:"path of the PDF file to ingest"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
	IndexSize  int    `json:"index_size"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query",
		Description: "Answer a question from the indexed documents",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Ingest a PDF file into the index",
	}, s.handleIngest)
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	opts := domain.QueryOptions{TopK: input.TopK}
	result, err := s.ports.Retrieval.Query(ctx, input.Question, opts)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Answer:  result.Answer,
		Results: make([]QueryResultOutput, len(result.Results)),
		Count:   len(result.Results),
	}

	for i := range result.Results {
		output.Results[i] = QueryResultOutput{
			Content:  result.Results[i].Content,
			Metadata: result.Results[i].Metadata,
			Score:    result.Results[i].Score,
			Rank:     result.Results[i].Rank,
		}
	}

	return nil, output, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Extractor == nil {
		return nil, IngestOutput{}, ErrNoExtractor
	}

	doc, err := s.ports.Extractor.Extract(ctx, input.Path)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	result, err := s.ports.Retrieval.Ingest(ctx, doc)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		DocumentID: result.DocumentID,
		ChunkCount: result.ChunkCount,
		IndexSize:  result.IndexSize,
	}, nil
}
