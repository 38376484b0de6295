// Package summary turns a product's reviews into a structured ProductRecord
// by prompting a chat-completion model for strict JSON output. The batch
// driver is best-effort: products whose call or parse fails are logged and
// skipped, never retried.
package summary

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hawker-labs/hawker/internal/llm"
)

var (
	ErrMalformedRecord = errors.New("malformed product record")
	ErrMissingASIN     = errors.New("product record missing ASIN")
)

// ProductRecord is the structured summary of one product. Field names on the
// wire follow the summarization schema: ASIN, name, description,
// review_summary, features. All fields are strings.
type ProductRecord struct {
	ASIN          string `json:"ASIN"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ReviewSummary string `json:"review_summary"`
	Features      string `json:"features"`
}

// RecordSchema returns the structured-output schema enforced on
// summarization replies.
func RecordSchema() *llm.ResponseSchema {
	return &llm.ResponseSchema{
		Name: "product_record",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"ASIN":           map[string]any{"type": "string"},
				"name":           map[string]any{"type": "string"},
				"description":    map[string]any{"type": "string"},
				"review_summary": map[string]any{"type": "string"},
				"features":       map[string]any{"type": "string"},
			},
			"required": []string{
				"ASIN", "name", "description", "review_summary", "features",
			},
			"additionalProperties": false,
		},
	}
}

// ParseRecord decodes a model reply into a ProductRecord. The reply must be a
// JSON object with string-typed fields and a non-empty ASIN.
func ParseRecord(reply string) (ProductRecord, error) {
	var record ProductRecord
	if err := json.Unmarshal([]byte(reply), &record); err != nil {
		return ProductRecord{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if record.ASIN == "" {
		return ProductRecord{}, ErrMissingASIN
	}
	return record, nil
}
