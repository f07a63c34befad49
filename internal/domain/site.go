package domain

import (
	"fmt"
	"regexp"
)

// slugRe matches lowercase words joined by single hyphens, which keeps a
// slug inside the output root when used as a directory name.
var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Site is one historical location in the catalog. Sites are immutable once
// the catalog is built.
type Site struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Region string `json:"region"`
	Blurb  string `json:"blurb"`
}

// Catalog is an ordered, read-only collection of sites.
type Catalog struct {
	sites  []Site
	bySlug map[string]int
}

// NewCatalog builds a catalog, rejecting empty, unsafe or duplicate slugs.
// Parameters:
//   - sites: sites in display order.
//
// Returns:
//   - Catalog: immutable catalog.
//   - error: non-nil if a slug is empty, repeated or not filesystem-safe.
func NewCatalog(sites []Site) (Catalog, error) {
	c := Catalog{
		sites:  make([]Site, len(sites)),
		bySlug: make(map[string]int, len(sites)),
	}
	copy(c.sites, sites)
	for i, s := range c.sites {
		if s.Slug == "" {
			return Catalog{}, fmt.Errorf("%w: site %d has an empty slug", ErrInvalidSlug, i+1)
		}
		if !slugRe.MatchString(s.Slug) {
			return Catalog{}, fmt.Errorf("%w: %q", ErrInvalidSlug, s.Slug)
		}
		if _, dup := c.bySlug[s.Slug]; dup {
			return Catalog{}, fmt.Errorf("duplicate site slug %q", s.Slug)
		}
		c.bySlug[s.Slug] = i
	}
	return c, nil
}

// Len returns the number of sites.
func (c Catalog) Len() int {
	return len(c.sites)
}

// Sites returns a copy of the ordered site list.
func (c Catalog) Sites() []Site {
	out := make([]Site, len(c.sites))
	copy(out, c.sites)
	return out
}

// At returns the site at a 1-based position.
func (c Catalog) At(pos int) (Site, bool) {
	if pos < 1 || pos > len(c.sites) {
		return Site{}, false
	}
	return c.sites[pos-1], true
}

// Lookup finds a site by slug.
// Parameters:
//   - slug: site slug.
//
// Returns:
//   - Site: matching site.
//   - error: ErrUnknownSite if the slug is not in the catalog.
func (c Catalog) Lookup(slug string) (Site, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Site{}, fmt.Errorf("%w: %s", ErrUnknownSite, slug)
	}
	return c.sites[i], nil
}

// ClampRange clamps a 1-based inclusive range to the catalog bounds.
// Returns ErrInvalidRange when the clamped range is empty.
func (c Catalog) ClampRange(start, end int) (int, int, error) {
	if start < 1 {
		start = 1
	}
	if end > len(c.sites) {
		end = len(c.sites)
	}
	if end < start {
		return 0, 0, fmt.Errorf("%w: %d..%d", ErrInvalidRange, start, end)
	}
	return start, end, nil
}
