package review

import (
	"testing"
	"time"
)

func at(day int) time.Time {
	return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestGroupByProduct_Empty(t *testing.T) {
	groups := GroupByProduct(nil, 5)

	if len(groups) != 0 {
		t.Errorf("expected no groups for empty input, got %d", len(groups))
	}
}

func TestGroupByProduct_DatasetOrder(t *testing.T) {
	reviews := []Review{
		{ASIN: "B001", Text: "first", ReviewedAt: at(1)},
		{ASIN: "B002", Text: "second", ReviewedAt: at(2)},
		{ASIN: "B001", Text: "third", ReviewedAt: at(3)},
		{ASIN: "B003", Text: "fourth", ReviewedAt: at(4)},
	}

	groups := GroupByProduct(reviews, 0)

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].ASIN != "B001" || groups[1].ASIN != "B002" || groups[2].ASIN != "B003" {
		t.Errorf("groups not in dataset order: %s, %s, %s",
			groups[0].ASIN, groups[1].ASIN, groups[2].ASIN)
	}
	if len(groups[0].Reviews) != 2 {
		t.Errorf("expected 2 reviews for B001, got %d", len(groups[0].Reviews))
	}
}

func TestGroupByProduct_LimitDistinctProducts(t *testing.T) {
	reviews := []Review{
		{ASIN: "B001", ReviewedAt: at(1)},
		{ASIN: "B002", ReviewedAt: at(2)},
		{ASIN: "B003", ReviewedAt: at(3)},
		{ASIN: "B001", ReviewedAt: at(4)}, // still admitted: B001 is within the limit
		{ASIN: "B004", ReviewedAt: at(5)}, // beyond the limit, dropped
	}

	groups := GroupByProduct(reviews, 2)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].ASIN != "B001" || groups[1].ASIN != "B002" {
		t.Errorf("expected first two distinct products, got %s, %s",
			groups[0].ASIN, groups[1].ASIN)
	}
	if len(groups[0].Reviews) != 2 {
		t.Errorf("expected late review of admitted product to be kept, got %d reviews",
			len(groups[0].Reviews))
	}
}

func TestGroupByProduct_LimitLargerThanDistinct(t *testing.T) {
	reviews := []Review{
		{ASIN: "B001", ReviewedAt: at(1)},
		{ASIN: "B002", ReviewedAt: at(2)},
	}

	groups := GroupByProduct(reviews, 10)

	if len(groups) != 2 {
		t.Errorf("expected min(limit, distinct) = 2 groups, got %d", len(groups))
	}
}

func TestGroupByProduct_SortedByRecency(t *testing.T) {
	reviews := []Review{
		{ASIN: "B001", Text: "old", ReviewedAt: at(1)},
		{ASIN: "B001", Text: "newest", ReviewedAt: at(9)},
		{ASIN: "B001", Text: "middle", ReviewedAt: at(5)},
	}

	groups := GroupByProduct(reviews, 1)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	got := groups[0].Reviews
	if got[0].Text != "newest" || got[1].Text != "middle" || got[2].Text != "old" {
		t.Errorf("reviews not sorted by recency: %s, %s, %s",
			got[0].Text, got[1].Text, got[2].Text)
	}
}

func TestGroupByProduct_StableForEqualTimestamps(t *testing.T) {
	reviews := []Review{
		{ASIN: "B001", Text: "a", ReviewedAt: at(3)},
		{ASIN: "B001", Text: "b", ReviewedAt: at(3)},
		{ASIN: "B001", Text: "c", ReviewedAt: at(3)},
	}

	groups := GroupByProduct(reviews, 1)

	got := groups[0].Reviews
	if got[0].Text != "a" || got[1].Text != "b" || got[2].Text != "c" {
		t.Errorf("equal timestamps should keep dataset order, got %s, %s, %s",
			got[0].Text, got[1].Text, got[2].Text)
	}
}

func TestGroupByProduct_ManyReviewsStaySorted(t *testing.T) {
	var reviews []Review
	for day := 1; day <= 25; day++ {
		reviews = append(reviews, Review{ASIN: "B001", ReviewedAt: at(day)})
	}

	groups := GroupByProduct(reviews, 1)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	got := groups[0].Reviews
	if len(got) != 25 {
		t.Fatalf("expected all 25 reviews, got %d", len(got))
	}
	if !got[0].ReviewedAt.Equal(at(25)) {
		t.Errorf("expected most recent review first, got %v", got[0].ReviewedAt)
	}
	if !got[24].ReviewedAt.Equal(at(1)) {
		t.Errorf("expected oldest review last, got %v", got[24].ReviewedAt)
	}
}
