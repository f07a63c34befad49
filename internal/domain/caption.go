package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// ManifestFileName holds the ordered caption records of a site.
	ManifestFileName = "captions.json"
	// ReportFileName holds the latest run report of a site.
	ReportFileName = "report.json"
	// GalleryFileName is the rendered gallery page of a site.
	GalleryFileName = "index.html"
	// DefaultExt is used when neither URL nor MIME type names an image type.
	DefaultExt = ".jpg"
)

// CaptionRecord describes one kept image of a site gallery.
type CaptionRecord struct {
	Index     int    `json:"index"`
	File      string `json:"file"`
	Caption   string `json:"caption"`
	Title     string `json:"title"`
	SourceURL string `json:"source_url"`
	Query     string `json:"query"`
	Score     int    `json:"score"`
	License   string `json:"license"`
}

// SequentialName returns the zero-padded file name for a 1-based index.
func SequentialName(index int, ext string) string {
	if ext == "" {
		ext = DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%03d%s", index, strings.ToLower(ext))
}

// ValidateManifest checks that indices are exactly 1..N and that every file
// name matches its index.
func ValidateManifest(records []CaptionRecord) error {
	for i, rec := range records {
		want := i + 1
		if rec.Index != want {
			return fmt.Errorf("record %d has index %d, want %d", i, rec.Index, want)
		}
		ext := filepath.Ext(rec.File)
		if rec.File != SequentialName(want, ext) {
			return fmt.Errorf("record %d has file %q, want %q", want, rec.File, SequentialName(want, ext))
		}
	}
	return nil
}
