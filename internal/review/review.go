// Package review loads product reviews from a CSV dataset and groups them
// per product for downstream summarization. Reviews are read once and never
// mutated; grouping preserves the order in which products first appear in
// the dataset.
package review

import (
	"sort"
	"time"
)

// Review is a single customer review of a product.
type Review struct {
	// ASIN is the Amazon Standard Identification Number of the product.
	ASIN string `json:"asin"`

	// Text is the free-form review body.
	Text string `json:"text"`

	// ReviewedAt is when the review was posted.
	ReviewedAt time.Time `json:"reviewed_at"`
}

// ProductReviews holds all reviews of one product, most recent first.
type ProductReviews struct {
	ASIN    string   `json:"asin"`
	Reviews []Review `json:"reviews"`
}

// GroupByProduct groups reviews by ASIN, keeping only the first limit
// distinct products in dataset order. Every review of an admitted product
// is kept, sorted by ReviewedAt descending (stable for equal timestamps).
// limit <= 0 keeps all products. An empty input yields an empty slice.
func GroupByProduct(reviews []Review, limit int) []ProductReviews {
	groups := make([]ProductReviews, 0)
	index := make(map[string]int)

	for _, r := range reviews {
		i, seen := index[r.ASIN]
		if !seen {
			if limit > 0 && len(groups) >= limit {
				continue
			}
			i = len(groups)
			index[r.ASIN] = i
			groups = append(groups, ProductReviews{ASIN: r.ASIN})
		}
		groups[i].Reviews = append(groups[i].Reviews, r)
	}

	for i := range groups {
		rs := groups[i].Reviews
		sort.SliceStable(rs, func(a, b int) bool {
			return rs[a].ReviewedAt.After(rs[b].ReviewedAt)
		})
	}

	return groups
}
