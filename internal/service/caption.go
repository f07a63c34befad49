package service

import (
	"strings"

	"github.com/timmy/reconlens/internal/domain"
)

const captionMaxRunes = 180

// ShortText truncates text to maxLen runes, ending with an ellipsis when cut.
func ShortText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return strings.TrimRightFunc(string(runes[:maxLen-1]), isSpace) + "…"
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// CaptionFor builds the caption of a kept image: the best available name
// plus artist and license attribution.
func CaptionFor(siteName string, c domain.Candidate) string {
	primary := c.ObjectName
	if primary == "" {
		primary = c.Description
	}
	if primary == "" {
		primary = c.Title
	}
	if primary == "" {
		primary = "Reconstruction view of " + siteName
	}

	var bits []string
	if c.Artist != "" {
		bits = append(bits, "Artist: "+c.Artist)
	}
	if c.LicenseName != "" {
		bits = append(bits, "License: "+c.LicenseName)
	}
	if len(bits) == 0 {
		return ShortText(primary, captionMaxRunes)
	}
	return ShortText(primary, captionMaxRunes) + " (" + strings.Join(bits, " | ") + ")"
}

// NewCaptionRecord builds the manifest record for a candidate kept at index.
func NewCaptionRecord(index int, file string, site domain.Site, c domain.Candidate) domain.CaptionRecord {
	return domain.CaptionRecord{
		Index:     index,
		File:      file,
		Caption:   CaptionFor(site.Name, c),
		Title:     c.Title,
		SourceURL: c.SourceURL,
		Query:     c.Query,
		Score:     c.Score,
		License:   c.LicenseName,
	}
}
