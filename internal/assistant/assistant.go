// Package assistant answers customer questions over the indexed product
// records. Each turn retrieves the top-K hybrid-search matches, folds them
// into a grounded sales prompt alongside the windowed chat history, and calls
// the chat model either single-shot or streaming.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hawker-labs/hawker/internal/llm"
	"github.com/hawker-labs/hawker/internal/store"
)

var (
	ErrEmptyQuestion = errors.New("question cannot be empty")
)

// Searcher is the retrieval surface the assistant needs from the vector
// store.
type Searcher interface {
	// HybridSearch returns up to limit matches ranked by fused relevance.
	HybridSearch(ctx context.Context, query string, limit int) ([]store.Match, error)
}

// Config holds answer-generation settings.
type Config struct {
	// TopK is the number of matches retrieved per question.
	TopK int

	// Temperature for answer generation.
	Temperature float64

	// MaxTokens limits each reply's length (0 = provider default).
	MaxTokens int
}

// DefaultConfig returns sensible defaults for sales answers.
func DefaultConfig() Config {
	return Config{
		TopK:        3,
		Temperature: 0.7,
	}
}

// Assistant retrieves product context and generates grounded answers.
type Assistant struct {
	store  Searcher
	llm    llm.Client
	config Config
}

// NewAssistant creates an Assistant over the given store and chat client.
func NewAssistant(searcher Searcher, client llm.Client, config Config) (*Assistant, error) {
	if searcher == nil {
		return nil, fmt.Errorf("searcher cannot be nil")
	}
	if client == nil {
		return nil, fmt.Errorf("LLM client cannot be nil")
	}
	if config.TopK <= 0 {
		config.TopK = DefaultConfig().TopK
	}

	return &Assistant{
		store:  searcher,
		llm:    client,
		config: config,
	}, nil
}

// Retrieve runs the hybrid search for a question and returns the matches
// together with the context string forwarded to the model: one single-line
// property dump per match, newline-joined.
func (a *Assistant) Retrieve(ctx context.Context, question string) ([]store.Match, string, error) {
	matches, err := a.store.HybridSearch(ctx, question, a.config.TopK)
	if err != nil {
		return nil, "", fmt.Errorf("failed to retrieve context: %w", err)
	}
	return matches, BuildContext(matches), nil
}

// Answer generates a complete reply for the question, grounded in the
// retrieved context and the prior turns of history (nil for none). Retrieval
// and generation errors propagate to the caller.
func (a *Assistant) Answer(ctx context.Context, question string, history *History) (string, error) {
	req, _, err := a.buildRequest(ctx, question, history)
	if err != nil {
		return "", err
	}

	reply, err := a.llm.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	return reply, nil
}

// AnswerStream is Answer in streaming form: it returns the reply as a lazy
// sequence of text deltas plus the matches that grounded it. The caller must
// Close the stream; cancelling ctx stops further pulls.
func (a *Assistant) AnswerStream(ctx context.Context, question string, history *History) (llm.Stream, []store.Match, error) {
	req, matches, err := a.buildRequest(ctx, question, history)
	if err != nil {
		return nil, nil, err
	}

	stream, err := a.llm.StreamComplete(ctx, req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate answer: %w", err)
	}
	return stream, matches, nil
}

func (a *Assistant) buildRequest(ctx context.Context, question string, history *History) (llm.Request, []store.Match, error) {
	if strings.TrimSpace(question) == "" {
		return llm.Request{}, nil, ErrEmptyQuestion
	}

	matches, contextStr, err := a.Retrieve(ctx, question)
	if err != nil {
		return llm.Request{}, nil, err
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: BuildSystemPrompt(contextStr)},
	}
	if history != nil {
		messages = append(messages, history.Messages()...)
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	return llm.Request{
		Messages:    messages,
		Temperature: a.config.Temperature,
		MaxTokens:   a.config.MaxTokens,
	}, matches, nil
}
