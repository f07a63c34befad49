// Package gallery renders the browsable HTML views: one page per site and a
// root index of all sites with a JSON manifest.
package gallery

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/sitedir"
)

// IndexFileName and ManifestFileName are written to the output root.
const (
	IndexFileName    = "index.html"
	ManifestFileName = "manifest.json"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// IndexEntry is one site row of the root manifest.
type IndexEntry struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Region string `json:"region"`
	Blurb  string `json:"blurb"`
	Count  int    `json:"count"`
	Thumb  string `json:"-"`
}

// WriteSite renders the gallery page of one site into dir.
// Parameters:
//   - dir: site directory.
//   - site: site shown in the header.
//   - records: manifest records in display order.
//
// Returns:
//   - error: non-nil if rendering or writing fails.
func WriteSite(dir string, site domain.Site, records []domain.CaptionRecord) error {
	data := struct {
		Site    domain.Site
		Records []domain.CaptionRecord
	}{site, records}
	return render(filepath.Join(dir, domain.GalleryFileName), "site.html.tmpl", data)
}

// BuildIndex scans the site directories under root and writes the root
// index page and manifest. Sites without a manifest count as empty.
// Parameters:
//   - root: output root holding one directory per site.
//   - sites: catalog sites in display order.
//
// Returns:
//   - []IndexEntry: one entry per site.
//   - error: non-nil if a manifest is unreadable or writing fails.
func BuildIndex(root string, sites []domain.Site) ([]IndexEntry, error) {
	entries := make([]IndexEntry, 0, len(sites))
	total := 0
	for _, s := range sites {
		records, err := sitedir.Open(root, s.Slug).ReadCaptions()
		if err != nil && !errors.Is(err, domain.ErrManifestNotFound) {
			return nil, err
		}
		e := IndexEntry{Slug: s.Slug, Name: s.Name, Region: s.Region, Blurb: s.Blurb, Count: len(records)}
		if len(records) > 0 {
			e.Thumb = records[0].File
		}
		total += e.Count
		entries = append(entries, e)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output root: %w", err)
	}
	data := struct {
		Entries []IndexEntry
		Total   int
	}{entries, total}
	if err := render(filepath.Join(root, IndexFileName), "index.html.tmpl", data); err != nil {
		return nil, err
	}
	if err := sitedir.WriteJSON(filepath.Join(root, ManifestFileName), entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func render(path, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
