package bm25

import (
	"regexp"
	"strings"
)

// wordRegex matches maximal runs of word characters: letters, digits, underscore.
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize lowercases text and returns its word-character runs in order.
// Punctuation, markdown syntax and whitespace only separate terms.
// Empty or punctuation-only input yields an empty, non-nil slice.
func Tokenize(text string) []string {
	tokens := wordRegex.FindAllString(strings.ToLower(text), -1)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// TermCounts returns the multiset of tokens as term -> count.
func TermCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}
