// Package similarity computes bounded [0,1] similarity between text spans.
// The lexical signal is a token-overlap ratio over normalized token sets;
// an optional vector-cosine signal can be blended in when embeddings are
// available. All measures are pure functions of their inputs.
package similarity

import (
	"math"
	"strings"

	"github.com/brunobiangulo/ragcheck/textnorm"
)

// Lexical measure names accepted by Config.Measure.
const (
	MeasureJaccard = "jaccard"
	MeasureOverlap = "overlap"
)

// Config controls how the engine combines its similarity signals.
type Config struct {
	// Measure selects the lexical token-overlap measure: "overlap"
	// (default, intersection over the smaller set — a short claim fully
	// contained in a longer evidence chunk scores 1.0) or "jaccard"
	// (intersection over union, which penalizes length asymmetry).
	Measure string `json:"measure" yaml:"measure"`

	// LexicalWeight and VectorWeight control the blend when embedding
	// vectors are supplied alongside the texts. They are renormalized to
	// sum to 1; both zero falls back to 0.5/0.5.
	LexicalWeight float64 `json:"lexical_weight" yaml:"lexical_weight"`
	VectorWeight  float64 `json:"vector_weight" yaml:"vector_weight"`
}

// Engine computes similarities according to a fixed Config. The zero
// value is usable and equivalent to New(Config{}).
type Engine struct {
	cfg Config
}

// New returns an Engine. Zero-value config fields are replaced with
// defaults (overlap coefficient, 0.5/0.5 weights).
func New(cfg Config) *Engine {
	if cfg.Measure == "" {
		cfg.Measure = MeasureOverlap
	}
	if cfg.LexicalWeight == 0 && cfg.VectorWeight == 0 {
		cfg.LexicalWeight = 0.5
		cfg.VectorWeight = 0.5
	}
	return &Engine{cfg: cfg}
}

// Similarity returns the lexical similarity of a and b in [0,1].
// Identical non-empty inputs score 1.0 even when they normalize to zero
// tokens; inputs that both normalize to empty token sets score 0.0.
func (e *Engine) Similarity(a, b string) float64 {
	if ta := strings.TrimSpace(a); ta != "" && ta == strings.TrimSpace(b) {
		return 1.0
	}

	setA := textnorm.TokenSet(a)
	setB := textnorm.TokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	inter := intersection(setA, setB)
	switch e.measure() {
	case MeasureJaccard:
		union := len(setA) + len(setB) - inter
		return float64(inter) / float64(union)
	default: // overlap coefficient
		return float64(inter) / float64(min(len(setA), len(setB)))
	}
}

// SimilarityWithVectors blends the lexical similarity of a and b with the
// cosine similarity of their embedding vectors, using the configured
// weights. Either vector being empty degrades to the lexical score alone.
func (e *Engine) SimilarityWithVectors(a, b string, va, vb []float32) float64 {
	lex := e.Similarity(a, b)
	if len(va) == 0 || len(vb) == 0 {
		return lex
	}
	wl, wv := e.weights()
	return clamp(wl*lex + wv*Cosine(va, vb))
}

// Containment returns the fraction of a's normalized tokens that appear
// in b. It is deliberately asymmetric: extra detail in b never lowers the
// score. Empty a (after normalization) returns 0.0 unless a and b are the
// same non-empty raw text.
func (e *Engine) Containment(a, b string) float64 {
	if ta := strings.TrimSpace(a); ta != "" && ta == strings.TrimSpace(b) {
		return 1.0
	}

	setA := textnorm.TokenSet(a)
	setB := textnorm.TokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}
	return float64(intersection(setA, setB)) / float64(len(setA))
}

// Cosine returns the cosine similarity of two vectors, clamped to [0,1].
// Mismatched lengths and zero vectors return 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return clamp(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

func (e *Engine) measure() string {
	if e.cfg.Measure == "" {
		return MeasureOverlap
	}
	return e.cfg.Measure
}

func (e *Engine) weights() (lexical, vector float64) {
	wl, wv := e.cfg.LexicalWeight, e.cfg.VectorWeight
	if wl <= 0 && wv <= 0 {
		return 0.5, 0.5
	}
	sum := wl + wv
	return wl / sum, wv / sum
}

func intersection(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
