package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sant0-9/legalgen/internal/config"
)

// Provider is a chat-completion backend. Complete issues exactly one request
// and never retries.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a completion request and returns the full response
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest represents a request to the LLM
type CompletionRequest struct {
	Model    string
	Messages []Message
}

// Message represents a chat message
type Message struct {
	Role    string
	Content string
}

// CompletionResponse represents the full response
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

var (
	// ErrMissingAPIKey is returned before any network call when the provider
	// has no credential. It is config.ErrMissingAPIKey, so startup validation
	// and per-call failures match the same errors.Is check.
	ErrMissingAPIKey = config.ErrMissingAPIKey

	// ErrMalformedResponse is wrapped when a 2xx body cannot be decoded or
	// carries no choices.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// StatusError reports a non-2xx response from the endpoint.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s error (status %d)", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// NewRequest creates a single-turn request: one system and one user message.
func NewRequest(model string, systemPrompt, userPrompt string) *CompletionRequest {
	return &CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
}
