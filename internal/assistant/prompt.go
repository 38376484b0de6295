package assistant

import (
	"fmt"
	"strings"

	"github.com/hawker-labs/hawker/internal/store"
)

// productURLTemplate is the fixed Amazon link template used for every
// product mention.
const productURLTemplate = "https://www.amazon.com/exec/obidos/ASIN/%s"

// ProductURL returns the Amazon product page link for an ASIN.
func ProductURL(asin string) string {
	return fmt.Sprintf(productURLTemplate, asin)
}

// BuildContext renders the retrieved matches as the model-facing context
// string: one single-line property dump per match, newline-joined.
func BuildContext(matches []store.Match) string {
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf(
			"ASIN: %s | name: %s | description: %s | review_summary: %s | features: %s",
			flatten(m.ASIN), flatten(m.Name), flatten(m.Description),
			flatten(m.ReviewSummary), flatten(m.Features)))
	}
	return strings.Join(lines, "\n")
}

// BuildSystemPrompt assembles the sales-assistant instructions around the
// retrieved context.
func BuildSystemPrompt(contextStr string) string {
	var b strings.Builder

	b.WriteString("You are a friendly sales assistant for an online store. ")
	b.WriteString("Answer the customer's question using ONLY the product context below. ")
	b.WriteString("If the context does not contain the answer, say so honestly instead of inventing products.\n\n")

	b.WriteString("Formatting rules:\n")
	b.WriteString("1. Every product you mention must appear as a markdown link: ")
	b.WriteString("[product name](" + fmt.Sprintf(productURLTemplate, "<ASIN>") + "), ")
	b.WriteString("substituting the product's ASIN from the context.\n")
	b.WriteString("2. End your answer with a \"References\" section listing each product you drew on, ")
	b.WriteString("one markdown link per line.\n\n")

	b.WriteString("# Product Context\n\n")
	if contextStr == "" {
		b.WriteString("(no matching products)\n")
	} else {
		b.WriteString(contextStr)
		b.WriteString("\n")
	}

	return b.String()
}

// flatten collapses a field onto one line so each match stays a single
// context entry.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
