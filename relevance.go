package ragcheck

import (
	"github.com/brunobiangulo/ragcheck/similarity"
	"github.com/brunobiangulo/ragcheck/textnorm"
)

// relevance blend weights: token containment of the query in the response
// versus coverage of the query's critical (significant) terms. Both
// components are asymmetric on purpose — a response that is more detailed
// than the query requires is never penalized for the extra detail.
const (
	relevanceSimilarityWeight = 0.5
	relevanceCoverageWeight   = 0.5
)

// relevanceScore computes the query/response semantic overlap in [0,1].
func relevanceScore(sim *similarity.Engine, query, response string) float64 {
	containment := sim.Containment(query, response)

	terms := textnorm.SignificantTerms(query)
	coverage := 1.0
	if len(terms) > 0 {
		respSet := textnorm.TokenSet(response)
		found := 0
		for _, t := range terms {
			if _, ok := respSet[t]; ok {
				found++
			}
		}
		coverage = float64(found) / float64(len(terms))
	}

	return clamp(relevanceSimilarityWeight*containment + relevanceCoverageWeight*coverage)
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
