package ragcheck

import "time"

// LatencyAndCost reports wall-clock duration and estimated spend for one
// evaluation. EstimatedCostUSD is nil when token usage was not supplied —
// "unknown" is deliberately distinct from "zero".
type LatencyAndCost struct {
	LatencySeconds   float64  `json:"latency_seconds"`
	EstimatedCostUSD *float64 `json:"estimated_cost_usd"`
}

// measure computes latency and cost. Latency is clamped to >= 0 to guard
// against clock skew on caller-supplied start timestamps. Cost is
// tokens x the per-1k-token rate for the request's model tier, falling
// back to the "default" price-table entry.
func measure(start, now time.Time, tokenUsage *int, model string, prices map[string]float64) LatencyAndCost {
	latency := now.Sub(start).Seconds()
	if latency < 0 {
		latency = 0
	}

	lc := LatencyAndCost{LatencySeconds: latency}
	if tokenUsage == nil {
		return lc
	}

	rate, ok := prices[model]
	if !ok {
		rate = prices[DefaultPriceKey]
	}
	cost := float64(*tokenUsage) / 1000 * rate
	lc.EstimatedCostUSD = &cost
	return lc
}
