package assistant

import (
	"context"
	"fmt"
	"log"

	"github.com/hawker-labs/hawker/internal/summary"
)

// DefaultBatchSize is the number of records submitted per insert call.
const DefaultBatchSize = 100

// Inserter is the ingestion surface the indexer needs from the vector store.
type Inserter interface {
	Insert(ctx context.Context, records []summary.ProductRecord) error
}

// IndexOptions configures the ingestion batching.
type IndexOptions struct {
	// BatchSize caps each insert call (DefaultBatchSize when <= 0).
	BatchSize int
}

// Index submits the records to the store in batches: full batches in the
// main loop, then the remainder once after it. The first failed insert
// aborts immediately, so ingestion may end partial; batches already
// submitted are not rolled back. Returns the number of records inserted.
func Index(ctx context.Context, inserter Inserter, records []summary.ProductRecord, opts IndexOptions) (int, error) {
	if inserter == nil {
		return 0, fmt.Errorf("inserter cannot be nil")
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	log.Printf("[Indexer] Indexing %d records in batches of %d", len(records), batchSize)

	inserted := 0
	for start := 0; start+batchSize <= len(records); start += batchSize {
		if err := inserter.Insert(ctx, records[start:start+batchSize]); err != nil {
			return inserted, fmt.Errorf("failed to insert batch at offset %d: %w", start, err)
		}
		inserted += batchSize
		log.Printf("[Indexer] Inserted %d/%d records", inserted, len(records))
	}

	if remainder := len(records) % batchSize; remainder > 0 {
		if err := inserter.Insert(ctx, records[len(records)-remainder:]); err != nil {
			return inserted, fmt.Errorf("failed to insert final batch: %w", err)
		}
		inserted += remainder
		log.Printf("[Indexer] Inserted %d/%d records", inserted, len(records))
	}

	return inserted, nil
}
