package mcp

import (
	"github.com/Leafra-ai/LeafraSDK/internal/core/ports/driven"
	"github.com/Leafra-ai/LeafraSDK/internal/core/ports/driving"
)

// Ports aggregates the interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers queries and ingests documents.
	Retrieval driving.RetrievalService

	// Extractor turns file paths into documents for the ingest tool.
	// Optional; without it the ingest tool reports an error.
	Extractor driven.Extractor
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// Extractor is optional.
	return nil
}
