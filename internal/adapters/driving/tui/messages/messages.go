// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

// RecommendRequested is a command to run a matching query.
type RecommendRequested struct {
	Query   string
	Options domain.RecommendOptions
}

// RecommendCompleted carries the recommendation back to the model.
type RecommendCompleted struct {
	Recommendation *domain.Recommendation
	Err            error
}

// StoreCounted carries the document count shown in the status bar.
type StoreCounted struct {
	Count int
}
