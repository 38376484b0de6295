// Package llm provides a provider-agnostic chat-completion client used by the
// summarizer and the sales assistant. It defines a small request/response
// surface with concrete implementations for OpenAI (single-shot and streaming)
// and a deterministic mock for testing.
package llm

import (
	"context"
	"errors"
)

var (
	ErrCompletionFailed = errors.New("completion request failed")
	ErrInvalidConfig    = errors.New("invalid LLM configuration")
	ErrInvalidRequest   = errors.New("invalid completion request")
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn.
type Message struct {
	Role    Role
	Content string
}

// ResponseSchema constrains the model's reply to a JSON document matching the
// given schema. Name identifies the schema to the provider; Schema is a JSON
// Schema object.
type ResponseSchema struct {
	Name   string
	Schema map[string]any
}

// Request describes one chat completion call.
type Request struct {
	// Messages is the full conversation sent to the model, oldest first.
	Messages []Message

	// Temperature controls randomness. It is always transmitted, so zero
	// requests deterministic decoding rather than the provider default.
	Temperature float64

	// MaxTokens limits the response length (0 = provider default).
	MaxTokens int

	// Schema, when non-nil, requests strict structured output.
	Schema *ResponseSchema
}

// Client defines the interface for chat-completion providers.
// Implementations must be stateless and thread-safe.
type Client interface {
	// Complete sends the request and returns the full reply text.
	Complete(ctx context.Context, req Request) (string, error)

	// StreamComplete sends the request and returns the reply as a stream
	// of text deltas. The caller must Close the stream; cancelling ctx
	// terminates it early.
	StreamComplete(ctx context.Context, req Request) (Stream, error)
}

// Config holds common configuration options for chat-completion providers.
type Config struct {
	// Model specifies the model identifier (e.g., "gpt-4o", "gpt-4o-mini")
	Model string

	// APIKey is the authentication key for the provider
	APIKey string
}

// DefaultConfig returns sensible defaults for answer generation.
func DefaultConfig() Config {
	return Config{
		Model: "gpt-4o",
	}
}
