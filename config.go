package ragcheck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brunobiangulo/ragcheck/entity"
	"github.com/brunobiangulo/ragcheck/similarity"
)

// Config holds all configuration for the evaluation engine. A Config is
// passed by value into New and treated as immutable for the lifetime of
// the Evaluator, so an Evaluator is safe to share across any number of
// concurrent evaluations.
type Config struct {
	// HallucinationThreshold is the minimum best-evidence similarity for a
	// claim to count as supported.
	HallucinationThreshold float64 `json:"hallucination_threshold" yaml:"hallucination_threshold"`

	// HallucinationFailThreshold is the hard safety gate: any report whose
	// hallucination score falls below it is a FAIL regardless of the other
	// scores.
	HallucinationFailThreshold float64 `json:"hallucination_fail_threshold" yaml:"hallucination_fail_threshold"`

	// RelevancePassThreshold and CompletenessPassThreshold are the minimum
	// scores for an outright PASS. Scores inside the ReviewBandWidth band
	// immediately below a pass threshold yield REVIEW; below the band, FAIL.
	RelevancePassThreshold    float64 `json:"relevance_pass_threshold" yaml:"relevance_pass_threshold"`
	CompletenessPassThreshold float64 `json:"completeness_pass_threshold" yaml:"completeness_pass_threshold"`
	ReviewBandWidth           float64 `json:"review_band_width" yaml:"review_band_width"`

	// Similarity configures the similarity engine (lexical measure and the
	// lexical/vector blend weights).
	Similarity similarity.Config `json:"similarity" yaml:"similarity"`

	// MinClaimTokens is the minimum normalized token count for a sentence
	// fragment to count as a claim. Defaults to 3.
	MinClaimTokens int `json:"min_claim_tokens" yaml:"min_claim_tokens"`

	// EntityTriggers maps query trigger phrases to expected entity types.
	// Empty means the built-in defaults (see entity.DefaultTriggers).
	EntityTriggers map[string]string `json:"entity_triggers,omitempty" yaml:"entity_triggers,omitempty"`

	// PriceTable maps a model/tier name to its USD cost per 1000 tokens.
	// The "default" entry is used when the request names no model or an
	// unlisted one.
	PriceTable map[string]float64 `json:"price_table,omitempty" yaml:"price_table,omitempty"`
}

// DefaultPriceKey is the PriceTable fallback entry.
const DefaultPriceKey = "default"

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		HallucinationThreshold:     0.55,
		HallucinationFailThreshold: 0.8,
		RelevancePassThreshold:     0.7,
		CompletenessPassThreshold:  0.7,
		ReviewBandWidth:            0.2,
		Similarity: similarity.Config{
			Measure:       similarity.MeasureOverlap,
			LexicalWeight: 0.5,
			VectorWeight:  0.5,
		},
		MinClaimTokens: 3,
		EntityTriggers: entity.DefaultTriggers(),
		PriceTable: map[string]float64{
			DefaultPriceKey: 0.002,
		},
	}
}

// Validate checks the configuration at startup. A malformed config is
// fatal for engine construction; all errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	check := func(name string, v float64) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %.3f outside [0,1]", ErrInvalidConfig, name, v)
		}
		return nil
	}
	if err := check("hallucination_threshold", c.HallucinationThreshold); err != nil {
		return err
	}
	if err := check("hallucination_fail_threshold", c.HallucinationFailThreshold); err != nil {
		return err
	}
	if err := check("relevance_pass_threshold", c.RelevancePassThreshold); err != nil {
		return err
	}
	if err := check("completeness_pass_threshold", c.CompletenessPassThreshold); err != nil {
		return err
	}
	if err := check("review_band_width", c.ReviewBandWidth); err != nil {
		return err
	}
	if c.Similarity.LexicalWeight < 0 || c.Similarity.VectorWeight < 0 {
		return fmt.Errorf("%w: similarity weights must be non-negative", ErrInvalidConfig)
	}
	switch c.Similarity.Measure {
	case "", similarity.MeasureJaccard, similarity.MeasureOverlap:
	default:
		return fmt.Errorf("%w: unknown similarity measure %q", ErrInvalidConfig, c.Similarity.Measure)
	}
	if c.MinClaimTokens < 0 {
		return fmt.Errorf("%w: min_claim_tokens must be non-negative", ErrInvalidConfig)
	}
	for model, rate := range c.PriceTable {
		if rate < 0 {
			return fmt.Errorf("%w: negative price %.6f for model %q", ErrInvalidConfig, rate, model)
		}
	}
	return nil
}

// LoadConfig reads a YAML config file, layering it over DefaultConfig so
// partial files only override the thresholds they name.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
