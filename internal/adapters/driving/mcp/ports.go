package mcp

import (
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Recommend runs ranked matching queries.
	Recommend driving.RecommendService

	// Ingest manages the document store.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Recommend == nil {
		return ErrMissingRecommendService
	}
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	return nil
}
