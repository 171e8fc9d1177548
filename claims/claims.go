// Package claims segments an AI response into atomic factual claims.
// Segmentation is a swappable strategy behind the Extractor interface so
// that a stronger segmenter can replace the sentence heuristic without
// touching callers.
package claims

import (
	"strings"
	"unicode"

	"github.com/brunobiangulo/ragcheck/textnorm"
)

// Claim is an atomic factual assertion extracted from a response.
// Claims are non-overlapping, ordered and derived deterministically;
// Position is the claim's index in the response.
type Claim struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// Extractor turns response text into an ordered sequence of claims.
type Extractor interface {
	Extract(text string) []Claim
}

// abbreviations that end with a period but do not terminate a sentence.
var abbreviations = map[string]bool{
	"e.g": true, "i.e": true, "etc": true, "vs": true, "cf": true,
	"dr": true, "mr": true, "mrs": true, "ms": true, "prof": true,
	"approx": true, "fig": true, "st": true, "jr": true,
	"sr": true, "inc": true, "ltd": true, "dept": true,
}

// SentenceExtractor splits text on sentence-boundary heuristics: terminal
// punctuation followed by whitespace or end of text, skipping common
// abbreviations. Fragments with fewer than MinTokens normalized tokens are
// discarded as boilerplate.
type SentenceExtractor struct {
	// MinTokens is the minimum normalized token count for a fragment to
	// count as a claim. Zero means the default of 3.
	MinTokens int
}

// NewSentenceExtractor returns a SentenceExtractor. minTokens <= 0 selects
// the default of 3.
func NewSentenceExtractor(minTokens int) *SentenceExtractor {
	if minTokens <= 0 {
		minTokens = 3
	}
	return &SentenceExtractor{MinTokens: minTokens}
}

// Extract returns the ordered claims found in text. Empty input yields
// nil; text without any sentence boundary yields a single claim spanning
// the whole text (provided it passes the minimum token filter, which a
// boundary-less text always does when non-trivial — a response consisting
// of one short fragment is kept rather than dropped so that the response
// is never silently unrepresented).
func (e *SentenceExtractor) Extract(text string) []Claim {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := splitSentences(text)
	if len(sentences) <= 1 {
		return []Claim{{Text: text, Position: 0}}
	}

	minTokens := e.MinTokens
	if minTokens <= 0 {
		minTokens = 3
	}

	var out []Claim
	for _, s := range sentences {
		if len(textnorm.Tokens(s)) < minTokens {
			continue
		}
		out = append(out, Claim{Text: s, Position: len(out)})
	}
	return out
}

// splitSentences breaks text at terminal punctuation ('.', '?', '!')
// followed by whitespace or end of text, unless the period belongs to a
// known abbreviation. Decimal points ("3.5") never split because the
// following rune is not whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		cur.WriteRune(runes[i])
		if runes[i] != '.' && runes[i] != '?' && runes[i] != '!' {
			continue
		}
		// Not a boundary unless followed by whitespace or end of text.
		if i+1 < len(runes) && runes[i+1] != ' ' && runes[i+1] != '\n' && runes[i+1] != '\t' {
			continue
		}
		if runes[i] == '.' && endsWithAbbreviation(cur.String(), digitFollows(runes, i+1)) {
			continue
		}
		s := strings.TrimSpace(cur.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		cur.Reset()
	}
	if cur.Len() > 0 {
		s := strings.TrimSpace(cur.String())
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// endsWithAbbreviation reports whether the text accumulated so far ends in
// a known abbreviation (including multi-dot forms like "e.g."). "No." is an
// abbreviation only in the numbered form ("No. 12"); a sentence genuinely
// ending in the word "no" is a real boundary.
func endsWithAbbreviation(s string, digitNext bool) bool {
	s = strings.TrimSuffix(s, ".")
	idx := strings.LastIndexAny(s, " \n\t")
	last := strings.ToLower(s[idx+1:])
	last = strings.TrimLeft(last, "(\"'")
	if last == "no" {
		return digitNext
	}
	return abbreviations[last] || abbreviations[strings.ReplaceAll(last, ".", "")]
}

// digitFollows reports whether the next non-whitespace rune at or after
// from is a digit.
func digitFollows(runes []rune, from int) bool {
	for i := from; i < len(runes); i++ {
		switch runes[i] {
		case ' ', '\n', '\t':
			continue
		}
		return unicode.IsDigit(runes[i])
	}
	return false
}
