package ragcheck

import (
	"context"
	"log/slog"

	"github.com/brunobiangulo/ragcheck/claims"
	"github.com/brunobiangulo/ragcheck/textnorm"
)

// EvidenceMatch pairs a claim with its best-matching evidence chunk.
// BestChunkIndex is nil when no usable evidence exists at all.
type EvidenceMatch struct {
	Claim          claims.Claim `json:"claim"`
	BestChunkIndex *int         `json:"best_chunk_index"`
	Similarity     float64      `json:"similarity"`
}

// HallucinationAnalysis is the evidence-grounding portion of a report.
// UnsupportedClaims is exactly the set of claims whose best evidence
// similarity fell below the hallucination threshold, in claim order.
type HallucinationAnalysis struct {
	HallucinationScore float64         `json:"hallucination_score"`
	UnsupportedClaims  []string        `json:"unsupported_claims"`
	Matches            []EvidenceMatch `json:"matches,omitempty"`
}

// hallucinationAnalysis extracts claims from the response and matches each
// against every usable context chunk. Chunks that normalize to zero tokens
// are skipped; with no usable evidence at all, every claim is unsupported
// with similarity 0 — hallucinations only matter relative to available
// knowledge, but zero evidence flags everything rather than silently
// passing. Ties on similarity keep the earliest-retrieved chunk.
func (e *Evaluator) hallucinationAnalysis(ctx context.Context, response string, chunks []string) HallucinationAnalysis {
	extracted := e.extractor.Extract(response)
	if len(extracted) == 0 {
		return HallucinationAnalysis{
			HallucinationScore: 1.0,
			UnsupportedClaims:  []string{},
		}
	}

	// Usable evidence: chunks that survive normalization.
	var usable []int
	for i, chunk := range chunks {
		if len(textnorm.Tokens(chunk)) > 0 {
			usable = append(usable, i)
		}
	}
	if len(usable) < len(chunks) {
		slog.Warn("ragcheck: skipping unusable context chunks",
			"total", len(chunks), "usable", len(usable))
	}

	claimVecs, chunkVecs := e.embedBatch(ctx, extracted, chunks, usable)

	analysis := HallucinationAnalysis{
		UnsupportedClaims: []string{},
		Matches:           make([]EvidenceMatch, 0, len(extracted)),
	}
	unsupported := 0
	for ci, claim := range extracted {
		bestIdx := -1
		bestSim := 0.0
		for _, idx := range usable {
			var sim float64
			if claimVecs != nil {
				sim = e.sim.SimilarityWithVectors(claim.Text, chunks[idx], claimVecs[ci], chunkVecs[idx])
			} else {
				sim = e.sim.Similarity(claim.Text, chunks[idx])
			}
			// Strictly greater keeps the earliest-retrieved chunk on ties.
			if bestIdx == -1 || sim > bestSim {
				bestIdx = idx
				bestSim = sim
			}
		}

		match := EvidenceMatch{Claim: claim, Similarity: bestSim}
		if bestIdx >= 0 {
			idx := bestIdx
			match.BestChunkIndex = &idx
		}
		analysis.Matches = append(analysis.Matches, match)

		if bestSim < e.cfg.HallucinationThreshold {
			unsupported++
			analysis.UnsupportedClaims = append(analysis.UnsupportedClaims, claim.Text)
		}
	}

	analysis.HallucinationScore = 1.0 - float64(unsupported)/float64(len(extracted))
	return analysis
}

// embedBatch embeds all claim texts and usable chunks in one provider call.
// Returns nils when no embedder is configured, there is nothing to match
// against, or embedding fails — the caller then scores lexically only.
func (e *Evaluator) embedBatch(ctx context.Context, extracted []claims.Claim, chunks []string, usable []int) (claimVecs, chunkVecs [][]float32) {
	if e.embedder == nil || len(usable) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(extracted)+len(usable))
	for _, c := range extracted {
		texts = append(texts, c.Text)
	}
	for _, idx := range usable {
		texts = append(texts, chunks[idx])
	}

	vecs, err := e.embedder.Embed(ctx, texts)
	if err != nil || len(vecs) != len(texts) {
		slog.Warn("ragcheck: embedding failed, falling back to lexical similarity", "error", err)
		return nil, nil
	}

	claimVecs = vecs[:len(extracted)]
	chunkVecs = make([][]float32, len(chunks))
	for i, idx := range usable {
		chunkVecs[idx] = vecs[len(extracted)+i]
	}
	return claimVecs, chunkVecs
}
