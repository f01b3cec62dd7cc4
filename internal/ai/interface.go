package ai

import (
	"context"
)

// LLMProvider is the contract every model backend satisfies. Providers only
// move text: they ask the model for JSON shaped like req.Schema and hand
// back whatever came out. Validation belongs to the caller.
type LLMProvider interface {
	// Name identifies the backend in logs ("gemini", "openai").
	Name() string

	// CompleteJSON runs one request and returns the raw reply text.
	CompleteJSON(ctx context.Context, req StructuredRequest) (string, error)
}
