package scoring

import "strings"

// Score computes the relevance score of a lowercase text blob.
func (r *Rules) Score(blob string, tokens []string) int {
	score := r.PositiveWeight*countHits(blob, r.Positive) +
		r.NegativeWeight*countHits(blob, r.Negative) +
		r.TokenWeight*countHits(blob, tokens)
	for _, b := range r.Bonuses {
		if containsAny(blob, b.Terms) {
			score += b.Points
		}
	}
	return score
}

// IsReconstructionLike reports whether the blob mentions the site and reads
// like a reconstruction or illustration.
func (r *Rules) IsReconstructionLike(blob string, tokens []string) bool {
	if countHits(blob, tokens) == 0 {
		return false
	}
	if containsAny(blob, r.Strong) {
		return true
	}
	visual := countHits(blob, r.Visual)
	if visual >= r.MinVisualHits {
		return true
	}
	return r.ContextTerm != "" && visual >= 1 && strings.Contains(blob, r.ContextTerm)
}

// Vetoed reports whether a hard reject rule matches the blob.
func (r *Rules) Vetoed(blob string, relaxed bool) bool {
	for _, v := range r.Vetoes {
		if v.StrictOnly && relaxed {
			continue
		}
		if strings.Contains(blob, v.Term) && !containsAny(blob, v.Unless) {
			return true
		}
	}
	return false
}

// HasNegative reports whether any negative keyword appears in the blob.
func (r *Rules) HasNegative(blob string) bool {
	return containsAny(blob, r.Negative)
}

// MinScore returns the acceptance threshold for a tier.
func (r *Rules) MinScore(tier Tier, relaxed bool) int {
	t := r.Thresholds[tier]
	if relaxed {
		return t.Relaxed
	}
	return t.Strict
}

func countHits(blob string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(blob, t) {
			n++
		}
	}
	return n
}

func containsAny(blob string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(blob, t) {
			return true
		}
	}
	return false
}
