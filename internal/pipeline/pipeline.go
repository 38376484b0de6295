// Package pipeline orchestrates end-to-end ingestion: aggregate reviews
// by product, summarize each product, index the records.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/hawker-labs/hawker/internal/assistant"
	"github.com/hawker-labs/hawker/internal/review"
	"github.com/hawker-labs/hawker/internal/summary"
)

// Config holds the knobs for one ingestion run.
type Config struct {
	// Products caps how many distinct products are ingested, in dataset order.
	Products int

	// BatchSize is the number of records per insert batch.
	BatchSize int
}

// DefaultConfig returns sensible defaults for an ingestion run.
func DefaultConfig() Config {
	return Config{
		Products:  50,
		BatchSize: assistant.DefaultBatchSize,
	}
}

// Result reports what one ingestion run produced. Records and Failures
// are valid even when Run returns an error.
type Result struct {
	// Products is the number of distinct products aggregated.
	Products int

	// Records holds the products that summarized cleanly.
	Records []summary.ProductRecord

	// Failures holds the products skipped during summarization.
	Failures []summary.Failure

	// Inserted is the number of records written to the store.
	Inserted int
}

// Pipeline runs the ingestion stages against assembled components.
type Pipeline struct {
	summarizer *summary.Summarizer
	inserter   assistant.Inserter
	config     Config
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(summarizer *summary.Summarizer, inserter assistant.Inserter, config Config) (*Pipeline, error) {
	if summarizer == nil {
		return nil, fmt.Errorf("summarizer cannot be nil")
	}
	if inserter == nil {
		return nil, fmt.Errorf("inserter cannot be nil")
	}
	if config.Products <= 0 {
		config.Products = DefaultConfig().Products
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	return &Pipeline{summarizer: summarizer, inserter: inserter, config: config}, nil
}

// Run ingests a review dump end to end. Summarization failures are
// collected in the result and the run continues; an indexing failure
// aborts the run and is returned alongside the partial result.
func (p *Pipeline) Run(ctx context.Context, reviews []review.Review) (*Result, error) {
	groups := review.GroupByProduct(reviews, p.config.Products)
	log.Printf("[Pipeline] Aggregated %d reviews into %d products", len(reviews), len(groups))

	result := &Result{Products: len(groups)}
	if len(groups) == 0 {
		return result, nil
	}

	result.Records, result.Failures = p.summarizer.Run(ctx, groups)
	if len(result.Records) == 0 {
		return result, fmt.Errorf("no products could be summarized")
	}

	inserted, err := assistant.Index(ctx, p.inserter, result.Records, assistant.IndexOptions{
		BatchSize: p.config.BatchSize,
	})
	result.Inserted = inserted
	if err != nil {
		return result, fmt.Errorf("failed to index records: %w", err)
	}

	log.Printf("[Pipeline] Ingested %d records (%d products skipped)", inserted, len(result.Failures))
	return result, nil
}
