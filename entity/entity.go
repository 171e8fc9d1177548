// Package entity provides pattern-based entity recognizers and the
// query-trigger mapping used by the completeness checker. Recognition is
// deliberately regex-based rather than a learned NER model so that results
// stay deterministic and the engine stays dependency-light. The registry
// maps an entity-type tag to a recognizer func, enabling per-domain
// extension without modifying checker control flow.
package entity

import (
	"regexp"
	"sort"
	"strings"
)

// Entity type tags recognized by the default registry.
const (
	TypeDate     = "date"
	TypeNumber   = "number"
	TypeCurrency = "currency"
	TypeLocation = "location"
	TypePerson   = "person"
)

// Recognizer reports whether text contains at least one entity of a type.
type Recognizer func(text string) bool

// Registry maps entity-type tags to recognizers.
type Registry struct {
	recognizers map[string]Recognizer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{recognizers: make(map[string]Recognizer)}
}

// Register adds or replaces the recognizer for an entity type.
func (r *Registry) Register(entityType string, fn Recognizer) {
	r.recognizers[entityType] = fn
}

// Detect reports whether text contains an entity of the given type.
// Unknown types are never detected.
func (r *Registry) Detect(entityType, text string) bool {
	fn, ok := r.recognizers[entityType]
	if !ok {
		return false
	}
	return fn(text)
}

// Types returns the registered entity types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.recognizers))
	for t := range r.recognizers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

var (
	// Times ("9am", "09:30", "7 pm") and calendar references (weekday and
	// month names, ISO dates, years).
	datePattern = regexp.MustCompile(`(?i)\b\d{1,2}(:\d{2})?\s*(am|pm)\b` +
		`|\b\d{1,2}:\d{2}\b` +
		`|\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b` +
		`|\b(january|february|march|april|may|june|july|august|september|october|november|december)\b` +
		`|\b\d{4}-\d{2}-\d{2}\b` +
		`|\b(19|20)\d{2}\b`)

	// Integers and decimals, including thousand separators.
	numberPattern = regexp.MustCompile(`\b\d+(?:[,.]\d+)*\b`)

	// Currency symbols or amounts qualified by a currency word.
	currencyPattern = regexp.MustCompile(`[$€£¥₹]\s*\d` +
		`|(?i)\b\d+(?:[,.]\d+)*\s*(usd|eur|gbp|inr|dollars?|euros?|pounds?|rupees?|cents?)\b` +
		`|(?i)\b(free of charge|no charge)\b`)

	// Street-style addresses or a capitalized word after a locative
	// preposition. Sentence-initial capitals are excluded by requiring the
	// preposition to be lowercase mid-sentence.
	locationPattern = regexp.MustCompile(`\b\d+\s+[A-Z][a-z]+\s+(Street|St|Road|Rd|Avenue|Ave|Boulevard|Blvd|Lane|Ln|Drive|Dr)\b` +
		`|\b(?:in|at|near|from)\s+[A-Z][a-z]+`)

	// Honorific followed by a capitalized name, or two adjacent
	// capitalized words mid-sentence.
	personPattern = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof)\.?\s+[A-Z][a-z]+` +
		`|[a-z,;]\s+[A-Z][a-z]+\s+[A-Z][a-z]+`)
)

// DefaultRegistry returns a registry with the built-in date, number,
// currency, location and person recognizers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeDate, datePattern.MatchString)
	r.Register(TypeNumber, numberPattern.MatchString)
	r.Register(TypeCurrency, currencyPattern.MatchString)
	r.Register(TypeLocation, locationPattern.MatchString)
	r.Register(TypePerson, personPattern.MatchString)
	return r
}

// DefaultTriggers returns the default mapping of query trigger phrases to
// the entity type the response is expected to contain. Triggers are
// matched case-insensitively on word boundaries; multi-word triggers match
// as phrases.
func DefaultTriggers() map[string]string {
	return map[string]string{
		"when":      TypeDate,
		"what time": TypeDate,
		"what date": TypeDate,
		"deadline":  TypeDate,
		"schedule":  TypeDate,
		"where":     TypeLocation,
		"location":  TypeLocation,
		"address":   TypeLocation,
		"how much":  TypeCurrency,
		"price":     TypeCurrency,
		"cost":      TypeCurrency,
		"fee":       TypeCurrency,
		"how many":  TypeNumber,
		"quantity":  TypeNumber,
		"who":       TypePerson,
	}
}

// ExpectedTypes applies a trigger map to a query and returns the implied
// entity types, deduplicated and sorted for deterministic iteration.
func ExpectedTypes(query string, triggers map[string]string) []string {
	lower := strings.ToLower(query)
	seen := make(map[string]bool)
	var types []string
	for trigger, typ := range triggers {
		if !containsPhrase(lower, strings.ToLower(trigger)) {
			continue
		}
		if !seen[typ] {
			seen[typ] = true
			types = append(types, typ)
		}
	}
	sort.Strings(types)
	return types
}

// containsPhrase reports whether phrase occurs in text on word boundaries.
func containsPhrase(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		startOK := start == 0 || !isWordChar(text[start-1])
		endOK := end == len(text) || !isWordChar(text[end])
		if startOK && endOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
