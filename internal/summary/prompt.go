package summary

import (
	"fmt"
	"strings"

	"github.com/hawker-labs/hawker/internal/review"
)

// DefaultMaxReviews is the number of reviews embedded in each
// summarization prompt.
const DefaultMaxReviews = 20

// BuildPrompt assembles the summarization prompt for one product. Reviews are
// expected most recent first, as produced by review.GroupByProduct; at most
// maxReviews of them are embedded (DefaultMaxReviews when maxReviews <= 0).
func BuildPrompt(asin string, reviews []review.Review, maxReviews int) string {
	if maxReviews <= 0 {
		maxReviews = DefaultMaxReviews
	}
	if len(reviews) > maxReviews {
		reviews = reviews[:maxReviews]
	}

	var b strings.Builder

	b.WriteString("You are a product analyst for an online store. ")
	b.WriteString("Your task is to condense the customer reviews below into a single ")
	b.WriteString("structured record describing the product they discuss.\n\n")

	b.WriteString("# Product\n\n")
	b.WriteString(fmt.Sprintf("**ASIN:** %s\n\n", asin))

	b.WriteString(fmt.Sprintf("**Customer Reviews (%d, most recent first):**\n", len(reviews)))
	if len(reviews) == 0 {
		b.WriteString("- (none)\n")
	} else {
		for _, r := range reviews {
			b.WriteString(fmt.Sprintf("- %s\n", r.Text))
		}
	}
	b.WriteString("\n")

	b.WriteString("# Task\n\n")
	b.WriteString("Respond with a JSON object containing exactly these string fields:\n")
	b.WriteString(fmt.Sprintf("1. \"ASIN\": the product identifier, exactly %q\n", asin))
	b.WriteString("2. \"name\": the product's name as inferred from the reviews\n")
	b.WriteString("3. \"description\": a one-paragraph description of the product\n")
	b.WriteString("4. \"review_summary\": a balanced summary of what the reviews praise and criticize\n")
	b.WriteString("5. \"features\": a comma-separated list of concrete product features mentioned\n\n")
	b.WriteString("Base every statement strictly on the reviews; do not invent details. ")
	b.WriteString("If the reviews never name the product, derive a short descriptive name from what they describe.\n")

	return b.String()
}
