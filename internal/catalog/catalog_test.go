package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/timmy/reconlens/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 64 {
		t.Fatalf("expected 64 sites, got %d", c.Len())
	}
	for _, s := range c.Sites() {
		if s.Slug != Slugify(s.Slug) {
			t.Errorf("slug %q is not filesystem-safe", s.Slug)
		}
	}
	site, err := c.Lookup("stonehenge")
	if err != nil || site.Name != "Stonehenge" {
		t.Errorf("Lookup(stonehenge) = %+v, %v", site, err)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hadrian's Wall":               "hadrian-s-wall",
		"Pantheon (Rome)":              "pantheon-rome",
		"  Mohenjo-daro  ":             "mohenjo-daro",
		"Temple of Artemis at Ephesus": "temple-of-artemis-at-ephesus",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.json")
	data := `[{"name":"Great Wall","region":"China"},{"slug":"troy","name":"Troy"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 sites, got %d", c.Len())
	}
	if _, err := c.Lookup("great-wall"); err != nil {
		t.Errorf("expected derived slug great-wall: %v", err)
	}
}

func TestLoadRejectsEscapingSlug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.json")
	data := `[{"slug":"../../escape","name":"Stonehenge"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, domain.ErrInvalidSlug) {
		t.Fatalf("Load accepted an unsafe slug: err = %v", err)
	}
}
