package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/hawker-labs/hawker/internal/summary"
)

func TestMilvusStore_Insert_EmptyRecords(t *testing.T) {
	store := &MilvusStore{config: DefaultMilvusConfig()}

	err := store.Insert(context.Background(), nil)
	if !errors.Is(err, ErrEmptyRecords) {
		t.Errorf("expected ErrEmptyRecords, got %v", err)
	}
}

func TestMilvusStore_Insert_RecordMissingASIN(t *testing.T) {
	store := &MilvusStore{config: DefaultMilvusConfig(), sparse: NewSparseEncoder()}

	records := []summary.ProductRecord{
		{ASIN: "B001", Name: "Strings"},
		{Name: "No identifier"},
	}

	err := store.Insert(context.Background(), records)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestMilvusStore_HybridSearch_EmptyQuery(t *testing.T) {
	store := &MilvusStore{config: DefaultMilvusConfig()}

	_, err := store.HybridSearch(context.Background(), "   ", 3)
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestMilvusStore_HybridSearch_InvalidLimit(t *testing.T) {
	store := &MilvusStore{config: DefaultMilvusConfig()}

	_, err := store.HybridSearch(context.Background(), "guitar", 0)
	if err == nil {
		t.Error("expected error for non-positive limit")
	}
}

func TestDefaultMilvusConfig(t *testing.T) {
	config := DefaultMilvusConfig()

	if config.Address == "" {
		t.Error("expected non-empty address")
	}
	if config.CollectionName != "hawker_products" {
		t.Errorf("expected collection hawker_products, got %s", config.CollectionName)
	}
	if config.Dimension != 1536 {
		t.Errorf("expected dimension 1536, got %d", config.Dimension)
	}
	if config.M != 16 || config.EfConstruction != 256 {
		t.Errorf("unexpected HNSW parameters: M=%d efConstruction=%d", config.M, config.EfConstruction)
	}
	if config.Ef <= 0 {
		t.Error("expected positive search width")
	}
}

func TestDocumentText(t *testing.T) {
	record := summary.ProductRecord{
		ASIN:          "B001",
		Name:          "Strings",
		Description:   "Guitar strings.",
		ReviewSummary: "Well liked.",
		Features:      "bronze, light",
	}

	text := documentText(record)

	lines := strings.Split(text, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if lines[0] != "B001" || lines[4] != "bronze, light" {
		t.Errorf("unexpected document text: %q", text)
	}
}

// Integration test: insert, hybrid search, stats, recreate
func TestMilvusStore_Integration_FullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("OPENAI_API_KEY not set")
	}

	ctx := context.Background()

	embedder, err := NewOpenAIEmbedder(DefaultEmbeddingConfig())
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}

	config := DefaultMilvusConfig()
	config.CollectionName = "hawker_test_integration"
	if addr := os.Getenv("MILVUS_ADDRESS"); addr != "" {
		config.Address = addr
	}
	config.APIKey = os.Getenv("MILVUS_API_KEY")

	store, err := NewMilvusStore(ctx, config, embedder)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	// Start from an empty collection
	if err := store.Recreate(ctx); err != nil {
		t.Fatalf("failed to recreate collection: %v", err)
	}

	records := []summary.ProductRecord{
		{
			ASIN:          "it-001",
			Name:          "Phosphor Bronze Guitar Strings",
			Description:   "Light gauge acoustic guitar strings.",
			ReviewSummary: "Players praise the warm tone and long life.",
			Features:      "phosphor bronze, light gauge, corrosion resistant",
		},
		{
			ASIN:          "it-002",
			Name:          "Dynamic Vocal Microphone",
			Description:   "Cardioid dynamic microphone for live vocals.",
			ReviewSummary: "Durable and handles loud stages well.",
			Features:      "cardioid, XLR, metal body",
		},
		{
			ASIN:          "it-003",
			Name:          "Mahogany Ukulele",
			Description:   "Concert-size ukulele with mahogany body.",
			ReviewSummary: "Good beginner instrument with mellow sound.",
			Features:      "mahogany, concert size, gig bag included",
		},
	}

	if err := store.Insert(ctx, records); err != nil {
		t.Fatalf("failed to insert records: %v", err)
	}
	t.Logf("✓ Inserted %d records", len(records))

	matches, err := store.HybridSearch(ctx, "warm sounding strings for my acoustic guitar", 2)
	if err != nil {
		t.Fatalf("hybrid search failed: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected search results, got none")
	}
	if len(matches) > 2 {
		t.Errorf("expected at most 2 matches, got %d", len(matches))
	}
	if matches[0].ASIN != "it-001" {
		t.Errorf("expected the guitar strings first, got %s", matches[0].ASIN)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i-1].Score < matches[i].Score {
			t.Errorf("scores not descending: %.4f < %.4f", matches[i-1].Score, matches[i].Score)
		}
	}
	t.Logf("✓ Hybrid search returned %d ranked matches", len(matches))

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	t.Logf("✓ Collection stats: %v", stats)

	// Clean up
	if err := store.Recreate(ctx); err != nil {
		t.Fatalf("failed to clean up collection: %v", err)
	}
}
