package driven

import (
	"context"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

// DocumentStore persists documents and their embeddings.
// The store exclusively owns Document records; callers receive value copies.
type DocumentStore interface {
	// SaveDocument stores or updates a document atomically: the document
	// and its embedding both become visible, or neither does.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound when the ID is unknown.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// DeleteDocument removes a document.
	// Returns domain.ErrNotFound when the ID is unknown.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all stored documents in insertion order.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
