package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/gallery"
	"github.com/timmy/reconlens/internal/logger"
	"github.com/timmy/reconlens/internal/sitedir"
	"github.com/timmy/reconlens/internal/source"
)

// Fetcher downloads raw bytes with retry. *fetch.Client implements it.
type Fetcher interface {
	GetBytes(ctx context.Context, url string, params map[string]string) ([]byte, error)
}

// FetchOptions holds the per-site acquisition settings of a run.
type FetchOptions struct {
	Root        string
	Target      int
	MaxPerQuery int
	Delay       time.Duration
	Relaxed     bool
	SkipPrimary bool
	Force       bool
	MinBytes    int
	// Budget overrides the wall-clock budget derived from Target.
	Budget time.Duration
}

// SiteBudget returns the wall-clock budget for one site: three seconds per
// target image, clamped to [220s, 320s].
func SiteBudget(target int) time.Duration {
	secs := target * 3
	if secs < 220 {
		secs = 220
	}
	if secs > 320 {
		secs = 320
	}
	return time.Duration(secs) * time.Second
}

// AttemptBudget returns how many candidates may be tried for a target.
func AttemptBudget(target int) int {
	if a, b := target*12, target+80; a > b {
		return a
	}
	return target + 80
}

// AcquisitionService retrieves, downloads and persists the gallery of one site.
type AcquisitionService struct {
	retriever *Retriever
	fetcher   Fetcher
	logger    *logger.Logger
	now       func() time.Time
}

// NewAcquisitionService creates a new acquisition service.
// Parameters:
//   - retriever: ranked candidate source.
//   - fetcher: image downloader.
//   - log: fallback logger when the context carries none.
//
// Returns:
//   - *AcquisitionService: initialized service.
func NewAcquisitionService(retriever *Retriever, fetcher Fetcher, log *logger.Logger) *AcquisitionService {
	if log == nil {
		log = logger.GetDefault()
	}
	return &AcquisitionService{
		retriever: retriever,
		fetcher:   fetcher,
		logger:    log,
		now:       time.Now,
	}
}

func (s *AcquisitionService) log(ctx context.Context) *logger.Logger {
	if l, ok := logger.Lookup(ctx); ok {
		return l
	}
	return s.logger
}

// ProcessSite runs retrieval and acquisition for one site and writes its
// manifest, report and gallery page. A manifest that already holds Target
// records is left alone unless Force is set.
// Parameters:
//   - ctx: context for cancellation.
//   - site: catalog site.
//   - opts: run settings.
//
// Returns:
//   - domain.RunReport: outcome of the run.
//   - error: non-nil only for disk failures; search and download failures
//     shrink the result instead.
func (s *AcquisitionService) ProcessSite(ctx context.Context, site domain.Site, opts FetchOptions) (domain.RunReport, error) {
	started := s.now()
	report := domain.RunReport{
		Site:   site.Slug,
		Name:   site.Name,
		Region: site.Region,
		Blurb:  site.Blurb,
		Target: opts.Target,
	}

	dir := sitedir.Open(opts.Root, site.Slug)
	if err := dir.Ensure(); err != nil {
		return report, err
	}

	budget := opts.Budget
	if budget <= 0 {
		budget = SiteBudget(opts.Target)
	}
	deadline := started.Add(budget)

	if !opts.Force && dir.HasManifest() {
		existing, err := dir.ReadCaptions()
		if err != nil {
			return report, err
		}
		if len(existing) >= opts.Target {
			report.Downloaded = len(existing)
			report.Skipped = true
			report.Timestamp = s.now().Unix()
			s.log(ctx).WithField(logger.FieldCount, len(existing)).Info("Manifest already complete, skipping")
			return report, nil
		}
	}

	res := s.retriever.Retrieve(ctx, site, RetrieveOptions{
		Target:      opts.Target,
		MaxPerQuery: opts.MaxPerQuery,
		Deadline:    deadline,
		Delay:       opts.Delay,
		Relaxed:     opts.Relaxed,
		SkipPrimary: opts.SkipPrimary,
	})
	report.Queries = res.Queries

	records := s.download(ctx, site, dir, res.Candidates, opts, deadline)

	if err := dir.WriteCaptions(records); err != nil {
		return report, err
	}
	report.Downloaded = len(records)
	report.Timestamp = s.now().Unix()
	if err := dir.WriteReport(report); err != nil {
		return report, err
	}
	if err := gallery.WriteSite(dir.Path, site, records); err != nil {
		return report, err
	}

	logger.With(logger.Fields{"candidates": len(res.Candidates)}).
		WithCount(len(records)).
		WithDuration(started).
		Info(ctx, "Site acquisition finished")
	return report, nil
}

// download walks candidates in rank order until target images are kept, the
// attempt budget is spent or the deadline passes.
func (s *AcquisitionService) download(ctx context.Context, site domain.Site, dir sitedir.Dir, candidates []domain.Candidate, opts FetchOptions, deadline time.Time) []domain.CaptionRecord {
	minBytes := opts.MinBytes
	if minBytes <= 0 {
		minBytes = DefaultMinBytes
	}
	pace := rate.NewLimiter(rate.Inf, 1)
	if opts.Delay > 0 {
		pace = rate.NewLimiter(rate.Every(opts.Delay), 1)
	}

	records := []domain.CaptionRecord{}
	maxAttempts := AttemptBudget(opts.Target)
	attempted := 0

	for _, c := range candidates {
		if len(records) >= opts.Target {
			break
		}
		if s.now().After(deadline) || ctx.Err() != nil {
			break
		}
		attempted++
		if attempted > maxAttempts {
			break
		}

		index := len(records) + 1
		ext := source.ExtFor(c)
		name := domain.SequentialName(index, ext)
		path := dir.Join(name)

		data, fetched, err := s.payload(ctx, pace, path, c.ImageURL, opts.Force)
		if err != nil {
			s.log(ctx).WithField("url", c.ImageURL).WithError(err).Warn("Download failed")
			continue
		}

		info, err := inspectPayload(data, minBytes)
		if err != nil {
			os.Remove(path)
			s.log(ctx).WithField("url", c.ImageURL).WithError(err).Debug("Payload rejected")
			continue
		}

		if formatMismatch(info.Format, ext) {
			logger.With(logger.Fields{
				"file":   name,
				"format": info.Format,
				"url":    c.ImageURL,
			}).Warn(ctx, "Image content is %s but saved as %s", info.Format, ext)
		}

		records = append(records, NewCaptionRecord(index, name, site, c))
		logger.With(logger.Fields{
			"file":            name,
			"format":          info.Format,
			"fetched":         fetched,
			logger.FieldScore: c.Score,
		}).WithSize(info.Size).Debug(ctx, "Image kept")
	}
	return records
}

// payload returns the bytes for path, reusing an existing file unless force
// is set. The returned bool reports whether a download happened.
func (s *AcquisitionService) payload(ctx context.Context, pace *rate.Limiter, path, url string, force bool) ([]byte, bool, error) {
	if !force {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, false, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, err
		}
	}

	if err := pace.Wait(ctx); err != nil {
		return nil, false, err
	}
	data, err := s.fetcher.GetBytes(ctx, url, nil)
	if err != nil {
		return nil, false, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return data, true, nil
}
