package mcp

import (
	"context"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

// mockRecommendService is a mock implementation of driving.RecommendService.
type mockRecommendService struct {
	rec   *domain.Recommendation
	query string
	opts  domain.RecommendOptions
	err   error
}

func (m *mockRecommendService) Recommend(
	_ context.Context,
	query string,
	opts domain.RecommendOptions,
) (*domain.Recommendation, error) {
	m.query = query
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.rec == nil {
		return &domain.Recommendation{Query: query, Status: domain.StatusEmptyStore}, nil
	}
	return m.rec, nil
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	docs       []domain.Document
	doc        *domain.Document
	ingestedID string
	removedID  string
	err        error
}

func (m *mockIngestService) Ingest(_ context.Context, id, _ string, _ map[string]any) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if id == "" {
		id = "generated-id"
	}
	m.ingestedID = id
	return id, nil
}

func (m *mockIngestService) Remove(_ context.Context, id string) error {
	m.removedID = id
	return m.err
}

func (m *mockIngestService) Get(_ context.Context, _ string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func (m *mockIngestService) List(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}
