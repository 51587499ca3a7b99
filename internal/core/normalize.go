// ABOUTME: Text normalization applied to FAQ questions and incoming queries
// ABOUTME: Lowercases and strips every rune that is not a word character or whitespace
package core

import (
	"strings"
	"unicode"
)

// Normalize lowercases text and removes punctuation and symbols.
// Letters, digits, underscore and whitespace are kept, in any script.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if isWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// tokenize splits normalized text into index terms: runs of two or more
// word runes that are not English stop words.
func tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	terms := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, stop := englishStopWords[f]; stop {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}
