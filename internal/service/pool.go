package service

import (
	"sort"
	"strings"

	"github.com/timmy/reconlens/internal/domain"
)

// CandidatePool deduplicates candidates by identity, keeping the best score.
type CandidatePool struct {
	byID map[string]domain.Candidate
}

// NewCandidatePool creates an empty pool.
func NewCandidatePool() *CandidatePool {
	return &CandidatePool{byID: make(map[string]domain.Candidate)}
}

// Add registers a candidate. An existing entry is replaced only by a strictly
// higher score.
func (p *CandidatePool) Add(c domain.Candidate) {
	prev, ok := p.byID[c.Identity]
	if !ok || c.Score > prev.Score {
		p.byID[c.Identity] = c
	}
}

// Len returns the number of distinct identities.
func (p *CandidatePool) Len() int {
	return len(p.byID)
}

// Sorted returns the candidates by score descending, then lowercase title.
// Identity breaks the remaining ties so the order never depends on map
// iteration.
func (p *CandidatePool) Sorted() []domain.Candidate {
	out := make([]domain.Candidate, 0, len(p.byID))
	for _, c := range p.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		ti, tj := strings.ToLower(out[i].Title), strings.ToLower(out[j].Title)
		if ti != tj {
			return ti < tj
		}
		return out[i].Identity < out[j].Identity
	})
	return out
}
