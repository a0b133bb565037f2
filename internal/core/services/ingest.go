package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driving"
	"github.com/talenta-labs/matcha-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService onboards documents: it embeds text, persists the
// document and registers the vector in the index. Writes are serialised
// through a single mutex; reads go straight to the store and index.
type IngestService struct {
	store    driven.DocumentStore
	index    driven.VectorIndex
	embedder driven.EmbeddingService
	cache    driven.EmbeddingCache

	// mu serialises the store+index write pair so a document and its
	// vector always land together.
	mu sync.Mutex
}

// NewIngestService creates a new ingest service. The embedder is
// expected to be cache-backed; cache may be nil when it is not.
func NewIngestService(
	store driven.DocumentStore,
	index driven.VectorIndex,
	embedder driven.EmbeddingService,
	cache driven.EmbeddingCache,
) *IngestService {
	return &IngestService{
		store:    store,
		index:    index,
		embedder: embedder,
		cache:    cache,
	}
}

// Ingest embeds the text and stores the document. When id is empty a new
// one is assigned and returned. Re-ingesting unchanged text reuses the
// cached embedding without a provider call.
func (s *IngestService) Ingest(ctx context.Context, id, text string, metadata map[string]any) (string, error) {
	text = domain.NormaliseText(text)
	if text == "" {
		return "", fmt.Errorf("ingest: empty text: %w", domain.ErrInvalidInput)
	}
	if id == "" {
		id = uuid.NewString()
	}

	logger.Section("Ingest")
	logger.Debug("Document: %s (%d chars)", id, len(text))

	// Embedding happens outside the write lock; the provider call can be
	// slow and readers must not stall behind it.
	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return "", fmt.Errorf("embed document: %w", err)
	}
	logger.Debug("Embedding: %d dimensions", len(embedding))

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:          id,
		ContentHash: domain.ContentHash(text),
		Text:        text,
		Embedding:   embedding,
		Metadata:    metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Preserve creation time and note the previous state for rollback.
	previous, err := s.store.GetDocument(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("check existing document: %w", err)
	}
	if previous != nil {
		doc.CreatedAt = previous.CreatedAt
	}

	if err := s.store.SaveDocument(ctx, doc); err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}

	if err := s.index.Add(ctx, id, embedding); err != nil {
		// Roll the store back so the document and vector stay in step.
		if previous != nil {
			if restoreErr := s.store.SaveDocument(ctx, previous); restoreErr != nil {
				logger.Warn("Rollback failed for %s: %v", id, restoreErr)
			}
		} else {
			if deleteErr := s.store.DeleteDocument(ctx, id); deleteErr != nil {
				logger.Warn("Rollback failed for %s: %v", id, deleteErr)
			}
		}
		return "", fmt.Errorf("index document: %w", err)
	}

	logger.Info("Ingested document %s", id)
	return id, nil
}

// Remove deletes a document from the index and the store and evicts its
// cached embedding. A query in flight sees the document fully or not at
// all.
func (s *IngestService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("remove document %s: %w", id, err)
	}

	// Index first: once the vector is gone the document can no longer be
	// returned by a search, even if the store delete below fails.
	if err := s.index.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove from index: %w", err)
	}

	if err := s.store.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("remove from store: %w", err)
	}

	if s.cache != nil {
		s.cache.Evict(doc.ContentHash)
	}

	logger.Info("Removed document %s", id)
	return nil
}

// Get retrieves a stored document by ID.
func (s *IngestService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.store.GetDocument(ctx, id)
}

// List returns all stored documents in insertion order.
func (s *IngestService) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}
