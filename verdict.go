package ragcheck

// Verdict is the final categorical judgment for a response.
type Verdict string

const (
	VerdictPass   Verdict = "PASS"
	VerdictFail   Verdict = "FAIL"
	VerdictReview Verdict = "REVIEW"
)

// aggregateVerdict combines the sub-scores. Evidence grounding is the hard
// safety gate: a hallucination score below the fail threshold is a FAIL no
// matter what the other scores say. Otherwise relevance and completeness
// are each judged against their pass threshold with a review band
// immediately below it, and the worst of the two wins.
func aggregateVerdict(cfg Config, relevance, completeness, hallucination float64) Verdict {
	if hallucination < cfg.HallucinationFailThreshold {
		return VerdictFail
	}

	rel := bandVerdict(relevance, cfg.RelevancePassThreshold, cfg.ReviewBandWidth)
	comp := bandVerdict(completeness, cfg.CompletenessPassThreshold, cfg.ReviewBandWidth)
	return worse(rel, comp)
}

// bandVerdict places a score relative to a pass threshold: at or above it
// PASS, inside the band below it REVIEW, under the band FAIL.
func bandVerdict(score, pass, band float64) Verdict {
	switch {
	case score >= pass:
		return VerdictPass
	case score >= pass-band:
		return VerdictReview
	default:
		return VerdictFail
	}
}

func worse(a, b Verdict) Verdict {
	if a == VerdictFail || b == VerdictFail {
		return VerdictFail
	}
	if a == VerdictReview || b == VerdictReview {
		return VerdictReview
	}
	return VerdictPass
}
