package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

// RecommendInput is the input schema for the recommend tool.
type RecommendInput struct {
	Query string `json:"query" jsonschema:"the job description or candidate profile to match against"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return, 1-20 (default 5)"`
}

// RecommendOutput is the output schema for the recommend tool.
type RecommendOutput struct {
	Results     []MatchOutput `json:"results"`
	Count       int           `json:"count"`
	Status      string        `json:"status"`
	Explanation string        `json:"explanation,omitempty"`
}

// MatchOutput represents a single ranked match.
type MatchOutput struct {
	DocumentID string         `json:"document_id"`
	Score      float64        `json:"score"`
	Preview    string         `json:"preview,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Text     string            `json:"text" jsonschema:"the extracted plain text of the CV or job description"`
	ID       string            `json:"id,omitempty" jsonschema:"document ID, generated when omitted; reusing an ID replaces the document"`
	Metadata map[string]string `json:"metadata,omitempty" jsonschema:"optional key-value metadata such as filename"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	DocumentID string `json:"document_id"`
}

// RemoveDocumentInput is the input schema for the remove_document tool.
type RemoveDocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the ID of the document to remove"`
}

// RemoveDocumentOutput is the output schema for the remove_document tool.
type RemoveDocumentOutput struct {
	Removed bool `json:"removed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recommend",
		Description: "Rank ingested CVs and job descriptions against a query and explain the best matches",
	}, s.handleRecommend)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Ingest an extracted CV or job description into the matching store",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_document",
		Description: "Remove a document from the matching store",
	}, s.handleRemoveDocument)
}

// handleRecommend handles the recommend tool invocation.
func (s *Server) handleRecommend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecommendInput,
) (*mcp.CallToolResult, RecommendOutput, error) {
	opts := domain.RecommendOptions{Limit: input.Limit}

	rec, err := s.ports.Recommend.Recommend(ctx, input.Query, opts)
	if err != nil {
		return nil, RecommendOutput{}, err
	}

	output := RecommendOutput{
		Results: make([]MatchOutput, len(rec.Results)),
		Count:   len(rec.Results),
		Status:  string(rec.Status),
	}
	if rec.Explanation != nil {
		output.Explanation = *rec.Explanation
	}

	for i := range rec.Results {
		output.Results[i] = MatchOutput{
			DocumentID: rec.Results[i].DocumentID,
			Score:      rec.Results[i].Score,
			Preview:    rec.Results[i].Preview,
			Metadata:   rec.Results[i].Metadata,
		}
	}

	return nil, output, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	var metadata map[string]any
	if len(input.Metadata) > 0 {
		metadata = make(map[string]any, len(input.Metadata))
		for k, v := range input.Metadata {
			metadata[k] = v
		}
	}

	id, err := s.ports.Ingest.Ingest(ctx, input.ID, input.Text, metadata)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{DocumentID: id}, nil
}

// handleRemoveDocument handles the remove_document tool invocation.
func (s *Server) handleRemoveDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemoveDocumentInput,
) (*mcp.CallToolResult, RemoveDocumentOutput, error) {
	if err := s.ports.Ingest.Remove(ctx, input.DocumentID); err != nil {
		return nil, RemoveDocumentOutput{}, err
	}

	return nil, RemoveDocumentOutput{Removed: true}, nil
}
