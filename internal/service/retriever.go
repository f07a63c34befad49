package service

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/logger"
	"github.com/timmy/reconlens/internal/scoring"
	"github.com/timmy/reconlens/internal/source"
)

// querySuffixes are appended to the site name to build search queries.
var querySuffixes = []string{
	"reconstruction",
	"artist impression",
	"historical reconstruction",
	"digital reconstruction",
	"illustration",
	"reconstruction drawing",
	"ancient view",
}

// BuildQueries returns the ordered search queries for a site name.
func BuildQueries(siteName string) []string {
	base := scoring.StripQualifier(siteName)
	queries := make([]string, 0, len(querySuffixes))
	for _, s := range querySuffixes {
		queries = append(queries, base+" "+s)
	}
	return queries
}

// Tier is one search provider in the fallback order.
type Tier struct {
	Provider source.Provider
	// Ceiling stops the tier once Ceiling*target candidates are collected.
	Ceiling int
	// Primary tiers are dropped when SkipPrimary is set.
	Primary bool
}

// RetrieveOptions controls one retrieval.
type RetrieveOptions struct {
	Target      int
	MaxPerQuery int
	Deadline    time.Time
	Delay       time.Duration // pause between queries
	Relaxed     bool
	SkipPrimary bool
}

// RetrieveResult holds the ranked candidates and the queries that were run.
type RetrieveResult struct {
	Candidates []domain.Candidate
	Queries    []string
}

// Retriever queries the provider tiers in order and ranks what they return.
type Retriever struct {
	tiers []Tier
	rules *scoring.Rules
	now   func() time.Time
}

// NewRetriever creates a retriever over tiers in fallback order.
// Parameters:
//   - rules: scoring rules; nil uses scoring.DefaultRules.
//   - tiers: providers, primary first.
//
// Returns:
//   - *Retriever: initialized retriever.
func NewRetriever(rules *scoring.Rules, tiers ...Tier) *Retriever {
	if rules == nil {
		rules = scoring.DefaultRules()
	}
	return &Retriever{tiers: tiers, rules: rules, now: time.Now}
}

// Retrieve collects candidates for a site. A tier runs only while fewer than
// Target candidates are collected. Failed queries count as zero results and
// the deadline truncates the search without an error.
func (r *Retriever) Retrieve(ctx context.Context, site domain.Site, opts RetrieveOptions) RetrieveResult {
	m := scoring.NewMatcher(r.rules, site.Name)
	queries := BuildQueries(site.Name)
	pool := NewCandidatePool()
	used := newOrderedSet()

	pace := rate.NewLimiter(rate.Inf, 1)
	if opts.Delay > 0 {
		pace = rate.NewLimiter(rate.Every(opts.Delay), 1)
	}

	for _, tier := range r.tiers {
		if tier.Primary && opts.SkipPrimary {
			continue
		}
		if pool.Len() >= opts.Target {
			break
		}
		ceiling := tier.Ceiling * opts.Target
		pctx := logger.SetProvider(ctx, tier.Provider.Name())

	queryLoop:
		for _, q := range queries {
			if r.expired(opts.Deadline) {
				logger.CtxDebug(pctx, "Site deadline reached, stopping search")
				break
			}
			if err := pace.Wait(pctx); err != nil {
				break
			}

			used.add(q)
			items, err := tier.Provider.Search(pctx, q, opts.MaxPerQuery)
			if err != nil {
				logger.FromContext(pctx).WithField(logger.FieldQuery, q).WithError(err).Warn("Search failed, treating as empty")
				continue
			}

			accepted := 0
			for _, item := range items {
				if r.expired(opts.Deadline) {
					break queryLoop
				}
				c, ok := tier.Provider.Normalize(item, q, m, opts.Relaxed)
				if !ok {
					continue
				}
				pool.Add(c)
				accepted++
			}
			logger.With(logger.Fields{logger.FieldQuery: q, "results": len(items)}).
				WithCount(accepted).
				Debug(pctx, "Query done")

			if pool.Len() >= ceiling {
				break
			}
		}
	}

	return RetrieveResult{Candidates: pool.Sorted(), Queries: used.items}
}

func (r *Retriever) expired(deadline time.Time) bool {
	return !deadline.IsZero() && r.now().After(deadline)
}

type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool), items: []string{}}
}

func (s *orderedSet) add(v string) {
	if !s.seen[v] {
		s.seen[v] = true
		s.items = append(s.items, v)
	}
}
