// Package store provides exact/fuzzy correction lookup implementations.
package store

import (
	"regexp"
	"strings"

	"github.com/ZaguanLabs/xliffai"
)

// Store is the interface for the correction/lookup store.
// This is an alias to the main package interface for convenience.
type Store = xliffai.Store

// Match is an alias to the main package type.
type Match = xliffai.StoreMatch

// Example is an alias to the main package type.
type Example = xliffai.Example

// MaxFuzzyResults bounds every fuzzy lookup.
const MaxFuzzyResults = 5

var termRe = regexp.MustCompile(`[a-z0-9]+`)

// stopTerms are too common to index or query on.
var stopTerms = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"this": true, "that": true, "are": true, "you": true, "not": true,
	"new": true, "all": true,
}

// SalientTerms extracts the index/query terms of a text: lower-cased
// alphanumeric tokens of three or more characters, minus stop words,
// deduplicated in first-seen order.
func SalientTerms(text string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, tok := range termRe.FindAllString(strings.ToLower(text), -1) {
		if len(tok) < 3 || stopTerms[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		terms = append(terms, tok)
	}
	return terms
}

// dedupeBySource keeps the first example per distinct source text and
// applies the fuzzy result bound.
func dedupeBySource(examples []Example) []Example {
	seen := make(map[string]bool)
	out := examples[:0]
	for _, ex := range examples {
		key := strings.ToLower(strings.TrimSpace(ex.Source))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ex)
		if len(out) == MaxFuzzyResults {
			break
		}
	}
	return out
}
