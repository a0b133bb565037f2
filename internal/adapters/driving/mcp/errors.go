// Package mcp provides an MCP (Model Context Protocol) server adapter for
// matcha. It lets AI assistants such as Claude run recommendations and
// manage the document store over stdio or HTTP.
package mcp

import "errors"

// ErrMissingRecommendService is returned when the recommend service is not provided.
var ErrMissingRecommendService = errors.New("mcp: recommend service is required")

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("mcp: ingest service is required")
