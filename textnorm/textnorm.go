// Package textnorm provides the shared text normalization used by every
// scorer in the engine: Unicode cleanup, lowercasing, punctuation stripping
// and stopword filtering. All functions are pure and deterministic.
package textnorm

import (
	"strings"
	"unicode"
)

// CleanUnicode normalizes Unicode characters commonly inserted by LLMs so
// that token matching works reliably. Handles:
//   - Unicode whitespace → ASCII space (U+202F, U+00A0, etc.)
//   - Unicode hyphens → ASCII hyphen (U+2011, U+2010, U+2012, U+2013, U+2014)
//   - Strips zero-width characters (U+200B, U+200C, U+200D, U+FEFF)
func CleanUnicode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case r == '\u2010' || r == '\u2011' || r == '\u2012' || r == '\u2013' || r == '\u2014':
			b.WriteByte('-')
		case r == '\u200B' || r == '\u200C' || r == '\u200D' || r == '\uFEFF':
			// strip zero-width characters
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokens converts text into an ordered sequence of normalized tokens:
// Unicode-cleaned, lowercased, with surrounding punctuation stripped.
// Empty input yields nil. Tokens that are pure punctuation are dropped.
func Tokens(text string) []string {
	cleaned := CleanUnicode(text)
	var tokens []string
	for _, w := range strings.Fields(cleaned) {
		w = strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		}))
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// TokenSet returns the set of normalized tokens in text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// SignificantTerms returns the deduplicated meaningful tokens of text,
// filtering out short words and stop words. Used to collect the
// query-critical terms for relevance scoring.
func SignificantTerms(text string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, t := range Tokens(text) {
		if len(t) > 2 && !IsStopWord(t) && !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	return terms
}

// stopWords holds common English function words that carry no evidential
// weight (3+ bytes only; shorter words are filtered by the length check).
var stopWords = map[string]bool{
	"the": true, "and": true, "are": true, "was": true, "were": true,
	"for": true, "with": true, "from": true, "this": true, "that": true,
	"these": true, "those": true, "there": true, "their": true,
	"what": true, "which": true, "who": true, "how": true, "where": true,
	"when": true, "why": true, "does": true, "did": true, "can": true,
	"will": true, "would": true, "should": true, "could": true,
	"has": true, "have": true, "had": true, "been": true, "being": true,
	"you": true, "your": true, "our": true, "its": true, "his": true,
	"her": true, "they": true, "them": true, "also": true, "into": true,
	"about": true, "than": true, "then": true, "some": true, "such": true,
	"may": true, "might": true, "must": true, "not": true, "but": true,
	"any": true, "all": true, "each": true, "per": true, "via": true,
}

// IsStopWord reports whether w (already lowercased) is a stop word.
func IsStopWord(w string) bool { return stopWords[w] }
