package driven

import "context"

// CompletionService provides language model text generation for match
// explanations. This is an optional service - when nil, recommendations
// degrade gracefully to ranked results without explanations.
//
// Implementations may include:
//   - OpenAI (gpt-4o-mini and compatible APIs)
//   - Ollama (local models)
type CompletionService interface {
	// Complete produces a completion from a system instruction and a user
	// prompt. The response is opaque prose; callers must not parse
	// structure out of it.
	Complete(ctx context.Context, system, prompt string, opts CompleteOptions) (string, error)

	// ModelName returns the name of the completion model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CompleteOptions configures text generation behaviour.
type CompleteOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
