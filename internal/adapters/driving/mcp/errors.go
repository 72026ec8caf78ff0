// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Leafra. It lets AI assistants query and extend the local index.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is
// not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// ErrNoExtractor is returned by the ingest tool when no extractor is
// configured.
var ErrNoExtractor = errors.New("mcp: no extractor configured for ingestion")
