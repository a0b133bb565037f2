package driving

import (
	"context"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

// IngestService onboards documents into the engine. It is consumed by the
// upload/extraction collaborators once they have produced plain text.
type IngestService interface {
	// Ingest embeds the text and stores the document. When id is empty a
	// new one is assigned and returned. Re-ingesting unchanged text reuses
	// the cached embedding without a provider call.
	Ingest(ctx context.Context, id, text string, metadata map[string]any) (string, error)

	// Remove deletes a document from the store and the index and evicts
	// its embedding cache entry. Returns domain.ErrNotFound for unknown ids.
	Remove(ctx context.Context, id string) error

	// Get retrieves a stored document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all stored documents.
	List(ctx context.Context) ([]domain.Document, error)
}
