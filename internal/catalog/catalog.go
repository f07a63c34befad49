package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/timmy/reconlens/internal/domain"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Default returns the built-in catalog.
func Default() domain.Catalog {
	c, err := domain.NewCatalog(builtin)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// Load returns the catalog stored in a JSON file ([{slug,name,region,blurb}]),
// or the built-in catalog when path is empty.
// Parameters:
//   - path: JSON catalog file path; empty selects the built-in list.
//
// Returns:
//   - domain.Catalog: loaded catalog.
//   - error: non-nil if the file cannot be read, parsed, or validated.
func Load(path string) (domain.Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	var sites []domain.Site
	if err := json.Unmarshal(data, &sites); err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for i := range sites {
		if sites[i].Slug == "" {
			sites[i].Slug = Slugify(sites[i].Name)
		}
	}
	return domain.NewCatalog(sites)
}

// Slugify turns a display name into a filesystem-safe slug.
func Slugify(name string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
