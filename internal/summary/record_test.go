package summary

import (
	"errors"
	"testing"
)

func TestParseRecord_Valid(t *testing.T) {
	reply := `{
		"ASIN": "B001",
		"name": "Phosphor Bronze Strings",
		"description": "A set of acoustic guitar strings.",
		"review_summary": "Warm tone, praised longevity.",
		"features": "phosphor bronze, light gauge"
	}`

	record, err := ParseRecord(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.ASIN != "B001" {
		t.Errorf("expected ASIN B001, got %s", record.ASIN)
	}
	if record.Name != "Phosphor Bronze Strings" {
		t.Errorf("unexpected name: %s", record.Name)
	}
	if record.ReviewSummary != "Warm tone, praised longevity." {
		t.Errorf("unexpected review summary: %s", record.ReviewSummary)
	}
}

func TestParseRecord_MalformedJSON(t *testing.T) {
	_, err := ParseRecord("I'm sorry, I can't summarize these reviews.")
	if !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestParseRecord_WrongFieldType(t *testing.T) {
	_, err := ParseRecord(`{"ASIN": "B001", "name": 42}`)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord for non-string field, got %v", err)
	}
}

func TestParseRecord_MissingASIN(t *testing.T) {
	_, err := ParseRecord(`{"name": "Strings", "description": "d", "review_summary": "s", "features": "f"}`)
	if !errors.Is(err, ErrMissingASIN) {
		t.Errorf("expected ErrMissingASIN, got %v", err)
	}
}

func TestRecordSchema_CoversAllFields(t *testing.T) {
	schema := RecordSchema()

	if schema.Name != "product_record" {
		t.Errorf("unexpected schema name %q", schema.Name)
	}

	props, ok := schema.Schema["properties"].(map[string]any)
	if !ok {
		t.Fatal("schema has no properties object")
	}
	for _, field := range []string{"ASIN", "name", "description", "review_summary", "features"} {
		if _, ok := props[field]; !ok {
			t.Errorf("schema missing field %q", field)
		}
	}

	required, ok := schema.Schema["required"].([]string)
	if !ok {
		t.Fatal("schema has no required list")
	}
	if len(required) != 5 {
		t.Errorf("expected 5 required fields, got %d", len(required))
	}
}
