package service

import (
	"testing"

	"github.com/timmy/reconlens/internal/domain"
)

func TestCandidatePoolKeepsMaxScore(t *testing.T) {
	low := domain.Candidate{Identity: "commons-1", Title: "low", Score: 5}
	high := domain.Candidate{Identity: "commons-1", Title: "high", Score: 11}

	tests := []struct {
		name  string
		order []domain.Candidate
	}{
		{"low then high", []domain.Candidate{low, high}},
		{"high then low", []domain.Candidate{high, low}},
		{"repeated", []domain.Candidate{high, low, high, low}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewCandidatePool()
			for _, c := range tt.order {
				p.Add(c)
			}
			if p.Len() != 1 {
				t.Fatalf("Len() = %d, want 1", p.Len())
			}
			got := p.Sorted()[0]
			if got.Score != 11 || got.Title != "high" {
				t.Errorf("kept %+v, want the score 11 candidate", got)
			}
		})
	}
}

func TestCandidatePoolSorted(t *testing.T) {
	p := NewCandidatePool()
	p.Add(domain.Candidate{Identity: "a", Title: "beta", Score: 9})
	p.Add(domain.Candidate{Identity: "b", Title: "Alpha", Score: 9})
	p.Add(domain.Candidate{Identity: "c", Title: "zeta", Score: 12})
	p.Add(domain.Candidate{Identity: "d", Title: "alpha", Score: 9})

	got := p.Sorted()
	want := []string{"c", "b", "d", "a"}
	for i, id := range want {
		if got[i].Identity != id {
			t.Errorf("position %d = %s, want %s", i, got[i].Identity, id)
		}
	}
}
