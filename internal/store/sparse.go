package store

import (
	"hash/fnv"
	"math"
	"regexp"
	"sort"
	"strings"
)

// SparseEncoder produces the sparse keyword vectors used by the hybrid
// search's term-scoring leg. Text is lowercased, tokenized, and stopword
// filtered; each term is hashed into the uint32 position space and weighted
// by its L2-normalized term frequency.
type SparseEncoder struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewSparseEncoder creates an encoder with the default English stopword list.
func NewSparseEncoder() *SparseEncoder {
	return &SparseEncoder{
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Encode returns the sparse representation of text as parallel position and
// weight slices, positions sorted ascending. Terms colliding on a hashed
// position merge their weights. Empty text yields empty slices.
func (e *SparseEncoder) Encode(text string) ([]uint32, []float32) {
	tokens := e.tokenize(text)
	if len(tokens) == 0 {
		// Keep stopword-only input searchable rather than producing an
		// empty vector the store would reject.
		trimmed := strings.ToLower(strings.TrimSpace(text))
		if trimmed == "" {
			return nil, nil
		}
		tokens = []string{trimmed}
	}

	tf := make(map[uint32]float32)
	for _, tok := range tokens {
		tf[hashTerm(tok)]++
	}

	positions := make([]uint32, 0, len(tf))
	for pos := range tf {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })

	total := float32(len(tokens))
	values := make([]float32, len(positions))
	norm := 0.0
	for i, pos := range positions {
		v := tf[pos] / total
		values[i] = v
		norm += float64(v) * float64(v)
	}
	if n := float32(math.Sqrt(norm)); n > 0 {
		for i := range values {
			values[i] /= n
		}
	}

	return positions, values
}

func (e *SparseEncoder) tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := e.tokenPattern.FindAllString(lower, -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func hashTerm(term string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(term))
	return h.Sum32()
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
