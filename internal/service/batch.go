package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/logger"
	"github.com/timmy/reconlens/internal/sitedir"
)

const reviewNotePrefix = "needs manual review: "

// RunRecorder persists one ledger row per processed site.
type RunRecorder interface {
	Record(ctx context.Context, run *domain.AcquisitionRun) error
}

// SiteProcessor acquires one site. *AcquisitionService implements it.
type SiteProcessor interface {
	ProcessSite(ctx context.Context, site domain.Site, opts FetchOptions) (domain.RunReport, error)
}

// BatchService runs acquisition over a catalog range with a worker pool.
type BatchService struct {
	catalog   domain.Catalog
	processor SiteProcessor
	recorder  RunRecorder
	publisher *Publisher
	logger    *logger.Logger
	workers   int
	now       func() time.Time
}

// BatchConfig holds configuration for the batch service
type BatchConfig struct {
	Workers   int
	Recorder  RunRecorder // optional run ledger
	Publisher *Publisher  // optional bucket mirror
}

// NewBatchService creates a new batch service.
// Parameters:
//   - catalog: site catalog.
//   - processor: per-site acquisition.
//   - log: base logger.
//   - cfg: pool size and optional collaborators.
//
// Returns:
//   - *BatchService: initialized service.
func NewBatchService(catalog domain.Catalog, processor SiteProcessor, log *logger.Logger, cfg *BatchConfig) *BatchService {
	if cfg == nil {
		cfg = &BatchConfig{}
	}
	if log == nil {
		log = logger.GetDefault()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &BatchService{
		catalog:   catalog,
		processor: processor,
		recorder:  cfg.Recorder,
		publisher: cfg.Publisher,
		logger:    log,
		workers:   workers,
		now:       time.Now,
	}
}

// BatchOptions selects the catalog range of a run.
type BatchOptions struct {
	Start int // 1-based, inclusive
	End   int // 1-based, inclusive
	Fetch FetchOptions
}

// BatchStats holds counters for a batch run.
type BatchStats struct {
	Sites      int64
	Downloaded int64
	Skipped    int64
	Degraded   int64
	StartTime  time.Time
	EndTime    time.Time
}

type siteJob struct {
	pos  int
	site domain.Site
}

type siteResult struct {
	pos    int
	report domain.RunReport
}

// BatchFileName returns the batch report file name for a range.
func BatchFileName(start, end int) string {
	return fmt.Sprintf("batch-%02d-%02d.json", start, end)
}

// Run processes the sites in [Start, End]. Per-site failures, panics
// included, become degraded reports; only an invalid range or a failure to
// write the batch report is returned as an error.
// Parameters:
//   - ctx: context for cancellation.
//   - opts: range and per-site settings.
//
// Returns:
//   - *domain.BatchReport: reports in catalog order.
//   - *BatchStats: aggregate counters.
//   - error: non-nil for configuration or batch report failures.
func (s *BatchService) Run(ctx context.Context, opts BatchOptions) (*domain.BatchReport, *BatchStats, error) {
	start, end, err := s.catalog.ClampRange(opts.Start, opts.End)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(opts.Fetch.Root, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create output root: %w", err)
	}

	runID := uuid.NewString()
	if _, ok := logger.Lookup(ctx); !ok {
		ctx = s.logger.WithContext(ctx)
	}
	ctx = logger.SetRunID(ctx, runID)

	stats := &BatchStats{StartTime: s.now()}
	logger.FromContext(ctx).WithFields(logger.Fields{
		"start":   start,
		"end":     end,
		"target":  opts.Fetch.Target,
		"workers": s.workers,
	}).Info("Starting batch")

	jobs := make(chan siteJob, s.workers*2)
	results := make(chan siteResult, s.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- siteResult{pos: job.pos, report: s.processSite(ctx, runID, job, end, opts.Fetch)}
			}
		}()
	}

	collected := make([]siteResult, 0, end-start+1)
	done := make(chan struct{})
	go func() {
		for r := range results {
			atomic.AddInt64(&stats.Sites, 1)
			atomic.AddInt64(&stats.Downloaded, int64(r.report.Downloaded))
			switch {
			case r.report.Degraded():
				atomic.AddInt64(&stats.Degraded, 1)
			case r.report.Skipped:
				atomic.AddInt64(&stats.Skipped, 1)
			}
			collected = append(collected, r)
		}
		close(done)
	}()

feed:
	for pos := start; pos <= end; pos++ {
		site, _ := s.catalog.At(pos)
		select {
		case jobs <- siteJob{pos: pos, site: site}:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(results)
	<-done

	sort.Slice(collected, func(i, j int) bool { return collected[i].pos < collected[j].pos })
	reports := make([]domain.RunReport, 0, len(collected))
	for _, r := range collected {
		reports = append(reports, r.report)
	}

	stats.EndTime = s.now()
	batch := &domain.BatchReport{
		RunID:     runID,
		Start:     start,
		End:       end,
		Target:    opts.Fetch.Target,
		Sites:     reports,
		Timestamp: stats.EndTime.Unix(),
	}

	batchPath := filepath.Join(opts.Fetch.Root, BatchFileName(start, end))
	if err := sitedir.WriteJSON(batchPath, batch); err != nil {
		return batch, stats, err
	}

	logger.FromContext(ctx).WithFields(logger.Fields{
		"sites":      stats.Sites,
		"downloaded": stats.Downloaded,
		"skipped":    stats.Skipped,
		"degraded":   stats.Degraded,
		"duration":   stats.EndTime.Sub(stats.StartTime).String(),
		"report":     batchPath,
	}).Info("Batch completed")

	return batch, stats, ctx.Err()
}

// processSite runs one site and never fails: errors and panics turn into a
// degraded placeholder.
func (s *BatchService) processSite(ctx context.Context, runID string, job siteJob, last int, opts FetchOptions) domain.RunReport {
	ctx = logger.SetSite(ctx, job.site.Slug)
	started := s.now()

	report, err := s.safeProcess(ctx, job.site, opts)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("Site failed, writing placeholder")
		report = s.degrade(ctx, job.site, opts, err)
	} else if s.publisher != nil && !report.Skipped {
		if _, err := s.publisher.PublishSite(ctx, opts.Root, job.site.Slug); err != nil {
			logger.FromContext(ctx).WithError(err).Warn("Publish failed")
		}
	}
	report.RunID = runID

	if s.recorder != nil {
		run := domain.NewAcquisitionRun(uuid.NewString(), runID, report, started, s.now())
		if err := s.recorder.Record(ctx, run); err != nil {
			logger.FromContext(ctx).WithError(err).Warn("Failed to record run")
		}
	}

	logger.With(logger.Fields{"skipped": report.Skipped, "degraded": report.Degraded()}).
		WithCount(report.Downloaded).
		Info(ctx, "[%02d/%02d] %s: downloaded %d images", job.pos, last, job.site.Name, report.Downloaded)
	return report
}

func (s *BatchService) safeProcess(ctx context.Context, site domain.Site, opts FetchOptions) (report domain.RunReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.processor.ProcessSite(ctx, site, opts)
}

// degrade writes the placeholder outcome of a failed site. An existing
// manifest is kept; a missing one is created empty.
func (s *BatchService) degrade(ctx context.Context, site domain.Site, opts FetchOptions, cause error) domain.RunReport {
	report := domain.RunReport{
		Site:      site.Slug,
		Name:      site.Name,
		Region:    site.Region,
		Blurb:     site.Blurb,
		Target:    opts.Target,
		Note:      reviewNotePrefix + cause.Error(),
		Timestamp: s.now().Unix(),
	}

	dir := sitedir.Open(opts.Root, site.Slug)
	if err := dir.Ensure(); err != nil {
		logger.FromContext(ctx).WithError(err).Error("Failed to write placeholder")
		return report
	}
	if !dir.HasManifest() {
		if err := dir.WriteCaptions(nil); err != nil {
			logger.FromContext(ctx).WithError(err).Error("Failed to write placeholder manifest")
		}
	} else if existing, err := dir.ReadCaptions(); err == nil {
		report.Downloaded = len(existing)
	}
	if err := dir.WriteReport(report); err != nil {
		logger.FromContext(ctx).WithError(err).Error("Failed to write placeholder report")
	}
	return report
}
