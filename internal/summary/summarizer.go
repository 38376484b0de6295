package summary

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/hawker-labs/hawker/internal/llm"
	"github.com/hawker-labs/hawker/internal/review"
)

// Config holds summarization batch settings.
type Config struct {
	// MaxReviews caps the reviews embedded per prompt.
	MaxReviews int

	// MaxTokens limits each reply's length.
	MaxTokens int

	// RequestsPerMinute throttles the sequential calls (0 = unthrottled).
	RequestsPerMinute int
}

// DefaultConfig returns sensible defaults for review summarization.
func DefaultConfig() Config {
	return Config{
		MaxReviews: DefaultMaxReviews,
		MaxTokens:  1000,
	}
}

// Failure records one product that could not be summarized.
type Failure struct {
	ASIN string
	Err  error
}

// Summarizer runs the per-product summarization batch.
type Summarizer struct {
	llm     llm.Client
	config  Config
	limiter *rate.Limiter
}

// NewSummarizer creates a Summarizer backed by the given chat client.
func NewSummarizer(client llm.Client, config Config) (*Summarizer, error) {
	if client == nil {
		return nil, fmt.Errorf("LLM client cannot be nil")
	}

	s := &Summarizer{
		llm:    client,
		config: config,
	}
	if config.RequestsPerMinute > 0 {
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 1)
	}

	return s, nil
}

// Run summarizes each product group in order, one blocking call at a time.
// Failed products are logged, recorded, and skipped; the batch always runs to
// completion and returns the successful records in input order alongside the
// failures.
func (s *Summarizer) Run(ctx context.Context, groups []review.ProductReviews) ([]ProductRecord, []Failure) {
	records := make([]ProductRecord, 0, len(groups))
	var failures []Failure

	log.Printf("[Summarizer] Summarizing %d products", len(groups))

	for i, group := range groups {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				log.Printf("[Summarizer] Warning: Skipping product %s: %v", group.ASIN, err)
				failures = append(failures, Failure{ASIN: group.ASIN, Err: err})
				continue
			}
		}

		record, err := s.summarizeOne(ctx, group)
		if err != nil {
			log.Printf("[Summarizer] Warning: Skipping product %s: %v", group.ASIN, err)
			failures = append(failures, Failure{ASIN: group.ASIN, Err: err})
			continue
		}

		records = append(records, record)
		log.Printf("[Summarizer] Summarized product %d/%d: %s", i+1, len(groups), group.ASIN)
	}

	log.Printf("[Summarizer] Completed: %d summarized, %d skipped", len(records), len(failures))
	return records, failures
}

func (s *Summarizer) summarizeOne(ctx context.Context, group review.ProductReviews) (ProductRecord, error) {
	prompt := BuildPrompt(group.ASIN, group.Reviews, s.config.MaxReviews)

	reply, err := s.llm.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Temperature: 0, // deterministic decoding
		MaxTokens:   s.config.MaxTokens,
		Schema:      RecordSchema(),
	})
	if err != nil {
		return ProductRecord{}, err
	}

	return ParseRecord(reply)
}
