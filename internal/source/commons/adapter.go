package commons

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/fetch"
	"github.com/timmy/reconlens/internal/scoring"
	"github.com/timmy/reconlens/internal/source"
)

const (
	ProviderName  = "commons"
	DefaultAPIURL = "https://commons.wikimedia.org/w/api.php"

	defaultPageSize   = 50
	defaultThumbWidth = 1280
	fileNamespace     = "6"
)

// continuation keys carried from one result page to the next
var continueKeys = []string{"continue", "gsroffset", "gsrcontinue"}

// Config holds configuration for the Commons adapter.
type Config struct {
	APIURL     string
	ThumbWidth int
	PageSize   int
}

// Adapter implements source.Provider for the Wikimedia Commons media search API.
type Adapter struct {
	client     *fetch.Client
	apiURL     string
	thumbWidth int
	pageSize   int
}

// NewAdapter creates a new Commons adapter.
// Parameters:
//   - client: shared fetch client.
//   - cfg: adapter configuration; zero values use defaults.
//
// Returns:
//   - *Adapter: initialized adapter.
func NewAdapter(client *fetch.Client, cfg Config) *Adapter {
	a := &Adapter{
		client:     client,
		apiURL:     cfg.APIURL,
		thumbWidth: cfg.ThumbWidth,
		pageSize:   cfg.PageSize,
	}
	if a.apiURL == "" {
		a.apiURL = DefaultAPIURL
	}
	if a.thumbWidth <= 0 {
		a.thumbWidth = defaultThumbWidth
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

type apiResponse struct {
	Continue map[string]interface{} `json:"continue"`
	Query    struct {
		Pages map[string]apiPage `json:"pages"`
	} `json:"query"`
}

type apiPage struct {
	PageID    int64          `json:"pageid"`
	Index     int            `json:"index"`
	Title     string         `json:"title"`
	ImageInfo []apiImageInfo `json:"imageinfo"`
}

type apiImageInfo struct {
	URL            string                `json:"url"`
	ThumbURL       string                `json:"thumburl"`
	DescriptionURL string                `json:"descriptionurl"`
	Mime           string                `json:"mime"`
	ExtMetadata    map[string]metaMember `json:"extmetadata"`
}

type metaMember struct {
	Value interface{} `json:"value"`
}

// Search runs a file-namespace search, following continuation tokens until
// limit pages have been collected or the results run out.
func (a *Adapter) Search(ctx context.Context, query string, limit int) ([]source.Item, error) {
	seen := make(map[int64]bool)
	items := []source.Item{}
	continuation := map[string]string{}

	for len(items) < limit {
		params := map[string]string{
			"action":       "query",
			"format":       "json",
			"generator":    "search",
			"gsrnamespace": fileNamespace,
			"gsrsearch":    query,
			"gsrlimit":     strconv.Itoa(a.pageSize),
			"prop":         "imageinfo",
			"iiprop":       "url|mime|extmetadata",
			"iiurlwidth":   strconv.Itoa(a.thumbWidth),
		}
		for k, v := range continuation {
			params[k] = v
		}

		var resp apiResponse
		if err := a.client.GetJSON(ctx, a.apiURL, params, &resp); err != nil {
			if len(items) > 0 {
				// keep the pages we already have
				break
			}
			return nil, fmt.Errorf("commons search %q: %w", query, err)
		}

		pages := make([]apiPage, 0, len(resp.Query.Pages))
		for _, p := range resp.Query.Pages {
			pages = append(pages, p)
		}
		sort.Slice(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })

		for _, p := range pages {
			if seen[p.PageID] {
				continue
			}
			seen[p.PageID] = true
			items = append(items, toItem(p))
		}

		continuation = nextContinuation(resp.Continue)
		if len(continuation) == 0 {
			break
		}
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func nextContinuation(raw map[string]interface{}) map[string]string {
	next := map[string]string{}
	for _, k := range continueKeys {
		if v, ok := raw[k]; ok {
			next[k] = fmt.Sprint(v)
		}
	}
	return next
}

func toItem(p apiPage) source.Item {
	var info apiImageInfo
	if len(p.ImageInfo) > 0 {
		info = p.ImageInfo[0]
	}
	imageURL := info.ThumbURL
	if imageURL == "" {
		imageURL = info.URL
	}
	return source.Item{
		ID:          strconv.FormatInt(p.PageID, 10),
		Title:       strings.TrimSpace(strings.ReplaceAll(p.Title, "File:", "")),
		ImageURL:    imageURL,
		SourceURL:   info.DescriptionURL,
		MimeType:    info.Mime,
		ObjectName:  metaText(info.ExtMetadata, "ObjectName"),
		Description: metaText(info.ExtMetadata, "ImageDescription"),
		Artist:      metaText(info.ExtMetadata, "Artist"),
		LicenseName: metaText(info.ExtMetadata, "LicenseShortName"),
		Credit:      metaText(info.ExtMetadata, "Credit"),
	}
}

func metaText(meta map[string]metaMember, key string) string {
	m, ok := meta[key]
	if !ok || m.Value == nil {
		return ""
	}
	if s, ok := m.Value.(string); ok {
		return source.StripHTML(s)
	}
	return source.StripHTML(fmt.Sprint(m.Value))
}

// Normalize applies the strict structured-metadata gate.
func (a *Adapter) Normalize(item source.Item, query string, m *scoring.Matcher, relaxed bool) (domain.Candidate, bool) {
	if item.ImageURL == "" || item.SourceURL == "" || !strings.HasPrefix(item.MimeType, "image/") {
		return domain.Candidate{}, false
	}

	textBlob := strings.ToLower(strings.Join([]string{
		item.Title, item.ObjectName, item.Description, item.Artist, item.Credit,
	}, " "))
	matchBlob := textBlob
	if relaxed {
		matchBlob = textBlob + " " + strings.ToLower(query)
	}

	score := m.Score(matchBlob)
	if !m.Accept(matchBlob, score, scoring.TierPrimary, relaxed) {
		return domain.Candidate{}, false
	}
	if m.Rules().Vetoed(textBlob, relaxed) {
		return domain.Candidate{}, false
	}

	return domain.Candidate{
		Identity:    ProviderName + "-" + item.ID,
		Title:       item.Title,
		ImageURL:    item.ImageURL,
		SourceURL:   item.SourceURL,
		MimeType:    item.MimeType,
		Score:       score,
		Query:       query,
		ObjectName:  item.ObjectName,
		Description: item.Description,
		Artist:      item.Artist,
		LicenseName: item.LicenseName,
		Credit:      item.Credit,
		TextBlob:    textBlob,
	}, true
}
