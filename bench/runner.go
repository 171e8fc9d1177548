package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brunobiangulo/ragcheck"
)

// CaseResult is the outcome of one case: the engine report, or the error
// that prevented one.
type CaseResult struct {
	Name   string           `json:"name"`
	Report *ragcheck.Report `json:"report,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// AggregateMetrics holds score averages across the scored cases of a run.
type AggregateMetrics struct {
	AvgRelevance     float64 `json:"avg_relevance"`
	AvgCompleteness  float64 `json:"avg_completeness"`
	AvgHallucination float64 `json:"avg_hallucination"`
}

// SuiteReport summarizes a suite run.
type SuiteReport struct {
	Suite      string           `json:"suite"`
	Total      int              `json:"total"`
	Passed     int              `json:"passed"`
	Failed     int              `json:"failed"`
	Review     int              `json:"review"`
	Errors     int              `json:"errors"`
	Metrics    AggregateMetrics `json:"metrics"`
	Results    []CaseResult     `json:"results"`
	RunTime    time.Duration    `json:"run_time"`
	TotalCost  *float64         `json:"total_cost_usd,omitempty"`
	CostKnown  bool             `json:"cost_known"`
}

// Runner evaluates suites against one engine.
type Runner struct {
	eval *ragcheck.Evaluator
}

// NewRunner creates a Runner.
func NewRunner(eval *ragcheck.Evaluator) *Runner {
	return &Runner{eval: eval}
}

// Run evaluates every case in the suite. Per-case errors are recorded and
// the run continues; Run itself only fails on a nil suite. Cost totals are
// reported as known only when every scored case carried token usage.
func (r *Runner) Run(ctx context.Context, suite *Suite) (*SuiteReport, error) {
	if suite == nil {
		return nil, fmt.Errorf("bench: nil suite")
	}

	start := time.Now()
	report := &SuiteReport{
		Suite:     suite.Name,
		Total:     len(suite.Cases),
		CostKnown: true,
	}

	scored := 0
	totalCost := 0.0
	for i, c := range suite.Cases {
		res := CaseResult{Name: c.Name}
		rep, err := r.eval.Evaluate(ctx, c.Request)
		if err != nil {
			res.Error = err.Error()
			report.Errors++
			report.Results = append(report.Results, res)
			slog.Warn("bench: case failed",
				"progress", fmt.Sprintf("%d/%d", i+1, len(suite.Cases)),
				"case", c.Name, "error", err)
			continue
		}
		res.Report = rep
		report.Results = append(report.Results, res)

		switch rep.FinalVerdict {
		case ragcheck.VerdictPass:
			report.Passed++
		case ragcheck.VerdictFail:
			report.Failed++
		case ragcheck.VerdictReview:
			report.Review++
		}

		scored++
		report.Metrics.AvgRelevance += rep.RelevanceScore
		report.Metrics.AvgCompleteness += rep.CompletenessScore
		report.Metrics.AvgHallucination += rep.Hallucination.HallucinationScore

		if rep.LatencyAndCost.EstimatedCostUSD != nil {
			totalCost += *rep.LatencyAndCost.EstimatedCostUSD
		} else {
			report.CostKnown = false
		}

		slog.Info("bench: case complete",
			"progress", fmt.Sprintf("%d/%d", i+1, len(suite.Cases)),
			"case", c.Name,
			"verdict", rep.FinalVerdict,
			"relevance", fmt.Sprintf("%.2f", rep.RelevanceScore),
			"completeness", fmt.Sprintf("%.2f", rep.CompletenessScore),
			"hallucination", fmt.Sprintf("%.2f", rep.Hallucination.HallucinationScore))
	}

	if scored > 0 {
		n := float64(scored)
		report.Metrics.AvgRelevance /= n
		report.Metrics.AvgCompleteness /= n
		report.Metrics.AvgHallucination /= n
	} else {
		report.CostKnown = false
	}
	if report.CostKnown {
		report.TotalCost = &totalCost
	}

	report.RunTime = time.Since(start)
	return report, nil
}
