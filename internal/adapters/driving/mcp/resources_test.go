package mcp

import (
	"context"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	mockIngest := &mockIngestService{
		docs: []domain.Document{
			{ID: "cv-1", Text: "Senior Go developer", Metadata: map[string]any{"filename": "cv-1.txt"}},
			{ID: "job-1", Text: "Backend engineer role"},
		},
	}
	server := newTestServer(t, &mockRecommendService{}, mockIngest)

	req := &sdk.ReadResourceRequest{
		Params: &sdk.ReadResourceParams{URI: "matcha://documents"},
	}
	result, err := server.handleDocumentsResource(ctx, req)

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, "cv-1")
	assert.Contains(t, result.Contents[0].Text, "job-1")
	assert.Contains(t, result.Contents[0].Text, "cv-1.txt")
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns document text", func(t *testing.T) {
		mockIngest := &mockIngestService{
			doc: &domain.Document{ID: "cv-1", Text: "Senior Go developer with ten years of experience"},
		}
		server := newTestServer(t, &mockRecommendService{}, mockIngest)

		req := &sdk.ReadResourceRequest{
			Params: &sdk.ReadResourceParams{URI: "matcha://documents/cv-1"},
		}
		result, err := server.handleDocumentContentResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "Senior Go developer with ten years of experience", result.Contents[0].Text)
	})

	t.Run("rejects malformed URI", func(t *testing.T) {
		server := newTestServer(t, &mockRecommendService{}, &mockIngestService{})

		req := &sdk.ReadResourceRequest{
			Params: &sdk.ReadResourceParams{URI: "matcha://other/cv-1"},
		}
		_, err := server.handleDocumentContentResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("propagates not found", func(t *testing.T) {
		mockIngest := &mockIngestService{err: domain.ErrNotFound}
		server := newTestServer(t, &mockRecommendService{}, mockIngest)

		req := &sdk.ReadResourceRequest{
			Params: &sdk.ReadResourceParams{URI: "matcha://documents/missing"},
		}
		_, err := server.handleDocumentContentResource(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"matcha://documents/cv-1", "cv-1"},
		{"matcha://documents/", ""},
		{"matcha://documents", ""},
		{"other://documents/cv-1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentID(tt.uri))
		})
	}
}
