package source

import (
	"context"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/scoring"
)

// Item is one raw search hit as returned by a provider, before scoring.
type Item struct {
	ID          string // provider-assigned id; empty when the provider has none
	Title       string
	ImageURL    string
	SourceURL   string
	MimeType    string
	ObjectName  string
	Description string
	Artist      string
	LicenseName string
	Credit      string
}

// Provider defines the interface for media search services.
type Provider interface {
	// Name returns the stable provider identifier used in logs and identities.
	// Parameters: none.
	// Returns:
	//   - string: provider name.
	Name() string

	// Search runs one free-text query.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	//   - query: free-text query.
	//   - limit: maximum number of items to return.
	// Returns:
	//   - []Item: raw items, possibly fewer than limit.
	//   - error: non-nil if the query failed after retries.
	Search(ctx context.Context, query string, limit int) ([]Item, error)

	// Normalize scores an item for a site and converts it into a candidate.
	// Parameters:
	//   - item: raw item from Search.
	//   - query: query that produced the item.
	//   - m: matcher bound to the site tokens.
	//   - relaxed: whether looser thresholds apply.
	// Returns:
	//   - domain.Candidate: normalized candidate.
	//   - bool: false when the item is rejected.
	Normalize(item Item, query string, m *scoring.Matcher, relaxed bool) (domain.Candidate, bool)
}
