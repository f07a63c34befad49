// Package websearch adapts a general web image search results page into a
// secondary reconstruction source. Results carry only a title and URLs, so
// the acceptance gate is stricter about site mentions.
package websearch

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/fetch"
	"github.com/timmy/reconlens/internal/scoring"
	"github.com/timmy/reconlens/internal/source"
)

const (
	ProviderName   = "websearch"
	DefaultBaseURL = "https://www.bing.com/images/search"

	defaultPageSize = 35
	defaultTitle    = "Web reconstruction image"
	webLicense      = "Unspecified (web source)"
)

// Config holds configuration for the web search adapter.
type Config struct {
	BaseURL  string
	PageSize int
}

// Adapter implements source.Provider by scraping an image results page.
type Adapter struct {
	client   *fetch.Client
	baseURL  string
	pageSize int
}

// NewAdapter creates a new web search adapter.
func NewAdapter(client *fetch.Client, cfg Config) *Adapter {
	a := &Adapter{client: client, baseURL: cfg.BaseURL, pageSize: cfg.PageSize}
	if a.baseURL == "" {
		a.baseURL = DefaultBaseURL
	}
	if a.pageSize <= 0 {
		a.pageSize = defaultPageSize
	}
	return a
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// resultMeta is the JSON payload carried in the "m" attribute of each result tile.
type resultMeta struct {
	Title    string `json:"t"`
	ImageURL string `json:"murl"`
	ThumbURL string `json:"turl"`
	PageURL  string `json:"purl"`
}

// Search fetches result pages until limit items are collected or a page adds
// nothing new.
func (a *Adapter) Search(ctx context.Context, query string, limit int) ([]source.Item, error) {
	seen := make(map[string]bool)
	items := []source.Item{}

	for offset := 0; len(items) < limit; offset += a.pageSize {
		body, err := a.client.GetBytes(ctx, a.baseURL, map[string]string{
			"q":     query,
			"first": strconv.Itoa(offset + 1),
			"count": strconv.Itoa(a.pageSize),
		})
		if err != nil {
			if len(items) > 0 {
				break
			}
			return nil, fmt.Errorf("web image search %q: %w", query, err)
		}

		page, err := parseResults(body)
		if err != nil {
			return nil, fmt.Errorf("web image search %q: %w", query, err)
		}

		added := 0
		for _, it := range page {
			if seen[it.ImageURL] {
				continue
			}
			seen[it.ImageURL] = true
			items = append(items, it)
			added++
		}
		if added == 0 {
			break
		}
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// parseResults extracts result tiles from an image search results document.
// Tiles whose metadata cannot be decoded are skipped.
func parseResults(body []byte) ([]source.Item, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	var items []source.Item
	doc.Find("a.iusc").Each(func(_ int, s *goquery.Selection) {
		raw, ok := s.Attr("m")
		if !ok {
			return
		}
		var meta resultMeta
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			return
		}
		image := meta.ThumbURL
		if image == "" {
			image = meta.ImageURL
		}
		if image == "" {
			return
		}
		pageURL := meta.PageURL
		if pageURL == "" {
			pageURL = image
		}
		items = append(items, source.Item{
			Title:     strings.TrimSpace(meta.Title),
			ImageURL:  image,
			SourceURL: pageURL,
		})
	})
	return items, nil
}

// Identity derives a stable id from the image URL.
func Identity(imageURL string) string {
	sum := sha1.Sum([]byte(imageURL))
	return "web-" + hex.EncodeToString(sum[:])[:16]
}

// Normalize applies the secondary gate: the title or page URL must name the
// site, read like a reconstruction, and carry no negative keyword.
func (a *Adapter) Normalize(item source.Item, query string, m *scoring.Matcher, relaxed bool) (domain.Candidate, bool) {
	if item.ImageURL == "" {
		return domain.Candidate{}, false
	}
	sourceURL := item.SourceURL
	if sourceURL == "" {
		sourceURL = item.ImageURL
	}

	baseBlob := strings.ToLower(item.Title + " " + sourceURL)
	matchBlob := baseBlob
	if relaxed {
		matchBlob = baseBlob + " " + strings.ToLower(query)
	}

	score := m.Score(matchBlob)
	if score < m.Rules().MinScore(scoring.TierSecondary, relaxed) {
		return domain.Candidate{}, false
	}
	if m.SiteHits(baseBlob) == 0 {
		return domain.Candidate{}, false
	}
	if !m.IsReconstructionLike(matchBlob) {
		return domain.Candidate{}, false
	}
	if m.Rules().HasNegative(baseBlob) {
		return domain.Candidate{}, false
	}

	title := item.Title
	if title == "" {
		title = defaultTitle
	}
	return domain.Candidate{
		Identity:    Identity(item.ImageURL),
		Title:       title,
		ImageURL:    item.ImageURL,
		SourceURL:   sourceURL,
		Score:       score,
		Query:       query,
		ObjectName:  title,
		LicenseName: webLicense,
		TextBlob:    baseBlob,
	}, true
}
