package tui

import (
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Recommend runs ranked matching queries.
	Recommend driving.RecommendService

	// Ingest is used to show the document count. Optional.
	Ingest driving.IngestService
}
