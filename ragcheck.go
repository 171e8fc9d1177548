// Package ragcheck is a deterministic post-generation evaluation engine
// for RAG chat responses. Given a user query, a model response and the
// retrieved evidence passages, it scores relevance, completeness and
// factual grounding, tracks latency and cost, and aggregates a final
// PASS/FAIL/REVIEW verdict. The engine is stateless: every evaluation is
// independent and an Evaluator may be shared by any number of goroutines.
package ragcheck

import (
	"context"
	"strings"
	"time"

	"github.com/brunobiangulo/ragcheck/claims"
	"github.com/brunobiangulo/ragcheck/embed"
	"github.com/brunobiangulo/ragcheck/entity"
	"github.com/brunobiangulo/ragcheck/similarity"
)

// Request is a single evaluation request. It is immutable once
// constructed; the engine never mutates it.
type Request struct {
	UserQuery     string   `json:"user_query"`
	AIResponse    string   `json:"ai_response"`
	ContextChunks []string `json:"context_chunks"`

	// TokenUsage is the token count of the generation being evaluated.
	// Nil means unknown, and the report carries a null cost rather than a
	// misleading zero.
	TokenUsage *int `json:"token_usage,omitempty"`

	// StartTime is the epoch-seconds timestamp at which the caller started
	// the work being measured. Zero means "start timing at Evaluate entry".
	StartTime float64 `json:"start_time,omitempty"`

	// Model selects the price-table tier for cost estimation. Empty or
	// unlisted models fall back to the "default" entry.
	Model string `json:"model,omitempty"`
}

// Report is the structured result of one evaluation.
type Report struct {
	RelevanceScore    float64               `json:"relevance_score"`
	CompletenessScore float64               `json:"completeness_score"`
	Hallucination     HallucinationAnalysis `json:"hallucination_analysis"`
	LatencyAndCost    LatencyAndCost        `json:"latency_and_cost"`
	FinalVerdict      Verdict               `json:"final_verdict"`
}

// Evaluator scores requests against a fixed, immutable configuration.
type Evaluator struct {
	cfg       Config
	sim       *similarity.Engine
	extractor claims.Extractor
	entities  *entity.Registry
	embedder  embed.Provider
	now       func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithEmbedder supplies an embedding provider. When set, hallucination
// detection blends vector-cosine similarity into the lexical signal using
// the configured weights. Embedding failures degrade to lexical-only
// scoring; they never abort an evaluation.
func WithEmbedder(p embed.Provider) Option {
	return func(e *Evaluator) { e.embedder = p }
}

// WithClaimExtractor replaces the default sentence-boundary claim
// extractor with a custom segmentation strategy.
func WithClaimExtractor(ex claims.Extractor) Option {
	return func(e *Evaluator) { e.extractor = ex }
}

// WithEntityRegistry replaces the default entity recognizer registry.
func WithEntityRegistry(reg *entity.Registry) Option {
	return func(e *Evaluator) { e.entities = reg }
}

// withClock overrides the time source. Used by tests.
func withClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

// New creates an Evaluator. The configuration is validated once here;
// a malformed config is a construction-time failure, never a per-request
// one.
func New(cfg Config, opts ...Option) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Evaluator{
		cfg:       cfg,
		sim:       similarity.New(cfg.Similarity),
		extractor: claims.NewSentenceExtractor(cfg.MinClaimTokens),
		entities:  entity.DefaultRegistry(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate scores a single request and assembles the report. It is safe
// to call concurrently from any number of goroutines. Structurally
// invalid requests (empty query or response) fail fast; evidence sparsity
// never does.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (*Report, error) {
	start := e.now()
	if req.StartTime > 0 {
		start = time.Unix(0, int64(req.StartTime*float64(time.Second)))
	}

	if strings.TrimSpace(req.UserQuery) == "" {
		return nil, ErrEmptyQuery
	}
	if strings.TrimSpace(req.AIResponse) == "" {
		return nil, ErrEmptyResponse
	}

	relevance := relevanceScore(e.sim, req.UserQuery, req.AIResponse)
	completeness := completenessScore(e.entities, e.triggers(), req.UserQuery, req.AIResponse)
	hallucination := e.hallucinationAnalysis(ctx, req.AIResponse, req.ContextChunks)

	report := &Report{
		RelevanceScore:    relevance,
		CompletenessScore: completeness,
		Hallucination:     hallucination,
		LatencyAndCost:    measure(start, e.now(), req.TokenUsage, req.Model, e.cfg.PriceTable),
		FinalVerdict:      aggregateVerdict(e.cfg, relevance, completeness, hallucination.HallucinationScore),
	}
	return report, nil
}

func (e *Evaluator) triggers() map[string]string {
	if len(e.cfg.EntityTriggers) > 0 {
		return e.cfg.EntityTriggers
	}
	return entity.DefaultTriggers()
}
