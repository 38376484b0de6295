package store

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestNewOpenAIEmbedder_MissingAPIKey(t *testing.T) {
	// Save original keys
	originalEmbed := os.Getenv("EMBEDDING_API_KEY")
	originalOpenAI := os.Getenv("OPENAI_API_KEY")
	defer os.Setenv("EMBEDDING_API_KEY", originalEmbed)
	defer os.Setenv("OPENAI_API_KEY", originalOpenAI)

	os.Unsetenv("EMBEDDING_API_KEY")
	os.Unsetenv("OPENAI_API_KEY")

	_, err := NewOpenAIEmbedder(DefaultEmbeddingConfig())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewOpenAIEmbedder_InvalidDimension(t *testing.T) {
	config := DefaultEmbeddingConfig()
	config.APIKey = "test-key"
	config.Dimension = 0

	_, err := NewOpenAIEmbedder(config)
	if !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension, got %v", err)
	}
}

func TestNewOpenAIEmbedder_Accessors(t *testing.T) {
	config := EmbeddingConfig{Model: "text-embedding-3-large", Dimension: 3072, APIKey: "test-key"}

	embedder, err := NewOpenAIEmbedder(config)
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}

	if embedder.GetModel() != "text-embedding-3-large" {
		t.Errorf("GetModel() = %q, want %q", embedder.GetModel(), "text-embedding-3-large")
	}
	if embedder.GetDimension() != 3072 {
		t.Errorf("GetDimension() = %d, want %d", embedder.GetDimension(), 3072)
	}
}

func TestDefaultEmbeddingConfig(t *testing.T) {
	config := DefaultEmbeddingConfig()

	if config.Model != "text-embedding-3-small" {
		t.Errorf("expected text-embedding-3-small, got %s", config.Model)
	}
	if config.Dimension != 1536 {
		t.Errorf("expected dimension 1536, got %d", config.Dimension)
	}
}

func TestOpenAIEmbedder_EmptyTexts(t *testing.T) {
	config := DefaultEmbeddingConfig()
	config.APIKey = "test-key"

	embedder, err := NewOpenAIEmbedder(config)
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}

	_, err = embedder.Embed(context.Background(), []string{})
	if !errors.Is(err, ErrEmptyTexts) {
		t.Errorf("expected ErrEmptyTexts, got %v", err)
	}
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	// Skip if no API key
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("OPENAI_API_KEY not set")
	}

	embedder, err := NewOpenAIEmbedder(DefaultEmbeddingConfig())
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}

	texts := []string{"acoustic guitar strings", "microphone pop filter"}
	vectors, err := embedder.Embed(context.Background(), texts)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if len(vectors) != len(texts) {
		t.Fatalf("expected %d vectors, got %d", len(texts), len(vectors))
	}
	for i, vector := range vectors {
		if len(vector) != 1536 {
			t.Errorf("vector[%d] dimension = %d, want 1536", i, len(vector))
		}
	}
}
