package domain

import (
	"errors"
	"testing"
)

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]Site{{Slug: "troy", Name: "Troy"}, {Slug: "troy", Name: "Troy again"}})
	if err == nil {
		t.Fatal("expected duplicate slug error")
	}
}

func TestNewCatalogRejectsUnsafeSlugs(t *testing.T) {
	for _, slug := range []string{"", "../../escape", "a/b", "Petra", "petra-", "-petra", "pe--tra", "pe tra", "."} {
		t.Run(slug, func(t *testing.T) {
			_, err := NewCatalog([]Site{{Slug: slug, Name: "Somewhere"}})
			if !errors.Is(err, ErrInvalidSlug) {
				t.Fatalf("NewCatalog(%q) err = %v, want ErrInvalidSlug", slug, err)
			}
			if !IsConfigError(err) {
				t.Errorf("expected a configuration error for %q", slug)
			}
		})
	}
	if _, err := NewCatalog([]Site{{Slug: "great-zimbabwe"}, {Slug: "troy2"}}); err != nil {
		t.Errorf("safe slugs rejected: %v", err)
	}
}

func TestCatalogLookup(t *testing.T) {
	c, err := NewCatalog([]Site{{Slug: "troy", Name: "Troy"}, {Slug: "petra", Name: "Petra"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	site, err := c.Lookup("petra")
	if err != nil || site.Name != "Petra" {
		t.Errorf("Lookup(petra) = %+v, %v", site, err)
	}

	if _, err := c.Lookup("atlantis"); !errors.Is(err, ErrUnknownSite) {
		t.Errorf("expected ErrUnknownSite, got %v", err)
	}
}

func TestCatalogClampRange(t *testing.T) {
	c, _ := NewCatalog([]Site{{Slug: "a"}, {Slug: "b"}, {Slug: "c"}})

	tests := []struct {
		name         string
		start, end   int
		wantS, wantE int
		wantErr      bool
	}{
		{name: "full", start: 1, end: 3, wantS: 1, wantE: 3},
		{name: "clamped", start: -2, end: 99, wantS: 1, wantE: 3},
		{name: "single", start: 2, end: 2, wantS: 2, wantE: 2},
		{name: "reversed", start: 3, end: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e, err := c.ClampRange(tt.start, tt.end)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Errorf("expected ErrInvalidRange, got %v", err)
				}
				return
			}
			if err != nil || s != tt.wantS || e != tt.wantE {
				t.Errorf("ClampRange(%d,%d) = %d,%d,%v", tt.start, tt.end, s, e, err)
			}
		})
	}
}

func TestValidateManifest(t *testing.T) {
	good := []CaptionRecord{{Index: 1, File: "001.jpg"}, {Index: 2, File: "002.png"}}
	if err := ValidateManifest(good); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	gap := []CaptionRecord{{Index: 1, File: "001.jpg"}, {Index: 3, File: "003.jpg"}}
	if err := ValidateManifest(gap); err == nil {
		t.Error("expected error for index gap")
	}

	misnamed := []CaptionRecord{{Index: 1, File: "002.jpg"}}
	if err := ValidateManifest(misnamed); err == nil {
		t.Error("expected error for mismatched file name")
	}
}

func TestSequentialName(t *testing.T) {
	if got := SequentialName(7, ".PNG"); got != "007.png" {
		t.Errorf("SequentialName(7, .PNG) = %q", got)
	}
	if got := SequentialName(12, ""); got != "012.jpg" {
		t.Errorf("SequentialName(12, \"\") = %q", got)
	}
}
