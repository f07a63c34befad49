package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/timmy/reconlens/internal/domain"
)

func TestShortText(t *testing.T) {
	long := strings.Repeat("é", 200)
	got := ShortText(long, 180)
	if n := utf8.RuneCountInString(got); n != 180 {
		t.Errorf("rune count = %d, want 180", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("missing ellipsis: %q", got[len(got)-8:])
	}

	spaced := strings.Repeat("a", 178) + "   tail"
	if got := ShortText(spaced, 180); got != strings.Repeat("a", 178)+"…" {
		t.Errorf("trailing space not trimmed: %q", got[170:])
	}

	if got := ShortText("short", 180); got != "short" {
		t.Errorf("ShortText(short) = %q", got)
	}
}

func TestCaptionFor(t *testing.T) {
	tests := []struct {
		name string
		c    domain.Candidate
		want string
	}{
		{
			name: "object name with attribution",
			c:    domain.Candidate{ObjectName: "Temple view", Description: "d", Title: "t", Artist: "J. Doe", LicenseName: "CC BY 4.0"},
			want: "Temple view (Artist: J. Doe | License: CC BY 4.0)",
		},
		{
			name: "description fallback",
			c:    domain.Candidate{Description: "A drawing", Title: "t", LicenseName: "PD"},
			want: "A drawing (License: PD)",
		},
		{
			name: "title fallback without attribution",
			c:    domain.Candidate{Title: "Plan.jpg"},
			want: "Plan.jpg",
		},
		{
			name: "site fallback",
			c:    domain.Candidate{},
			want: "Reconstruction view of Petra",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CaptionFor("Petra", tt.c); got != tt.want {
				t.Errorf("CaptionFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
