package domain

import "time"

// Document represents one embeddable unit: a CV's extracted text or a job
// summary. It is the canonical representation handed to the engine after the
// upload/extraction collaborators have produced plain text.
type Document struct {
	// ID is the unique identifier, assigned at ingest and immutable after.
	ID string

	// ContentHash is the stable hash of the normalised text.
	// Used for duplicate detection and embedding cache keys.
	ContentHash string

	// Text is the raw text that was embedded.
	// Never mutated after ingest; used for previews and explanations.
	Text string

	// Embedding is the vector representation of Text.
	// Always exactly the configured dimension (default 1536).
	Embedding []float32

	// Metadata contains caller-owned key-value pairs (filename, upload
	// time). The engine passes it through without inspecting it.
	Metadata map[string]any

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last re-ingested.
	UpdatedAt time.Time
}

// Preview returns the leading portion of the document text for display,
// truncated to maxLen runes with an ellipsis.
func (d *Document) Preview(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(d.Text)
	if len(runes) <= maxLen {
		return d.Text
	}
	return string(runes[:maxLen]) + "..."
}
