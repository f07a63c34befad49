package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/gallery"
	"github.com/timmy/reconlens/internal/repository"
	"github.com/timmy/reconlens/internal/service"
)

type fetchOptions struct {
	start       int
	end         int
	output      string
	target      int
	maxPerQuery int
	delayMs     int
	workers     int
	force       bool
	relaxed     bool
	skipPrimary bool
}

func newFetchCommand(global *globalOptions) *cobra.Command {
	opts := &fetchOptions{}
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download reconstruction images for a range of catalog sites",
		Long: `fetch processes catalog positions --start through --end (1-based,
inclusive). Each site gets a directory of numbered images, a captions.json
manifest and a report.json. Sites that fail get a placeholder report marked
for manual review and the batch carries on.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, global, opts)
		},
	}
	opts.bindFlags(cmd)
	return cmd
}

func (o *fetchOptions) bindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&o.start, "start", 1, "first catalog position (1-based)")
	f.IntVar(&o.end, "end", 0, "last catalog position, inclusive (default the last catalog site)")
	f.StringVar(&o.output, "output", "", "output root (default from config)")
	f.IntVar(&o.target, "target", 0, "images per site (default from config)")
	f.IntVar(&o.maxPerQuery, "max-per-query", 0, "results requested per search query")
	f.IntVar(&o.delayMs, "delay-ms", 0, "pause between queries and downloads in milliseconds")
	f.IntVar(&o.workers, "workers", 0, "sites processed in parallel")
	f.BoolVar(&o.force, "force", false, "re-download even when files or a full manifest exist")
	f.BoolVar(&o.relaxed, "relaxed", false, "use the lower acceptance thresholds")
	f.BoolVar(&o.skipPrimary, "skip-primary", false, "search only the secondary source")
}

// applyFlags overrides config values with the flags set on the command line.
func (o *fetchOptions) applyFlags(cmd *cobra.Command, a *app) {
	f := cmd.Flags()
	cfg := a.cfg
	if !f.Changed("end") {
		o.end = a.catalog.Len()
	}
	if f.Changed("output") {
		cfg.Output.Root = o.output
	}
	if f.Changed("target") {
		cfg.Fetch.Target = o.target
	}
	if f.Changed("max-per-query") {
		cfg.Fetch.MaxPerQuery = o.maxPerQuery
	}
	if f.Changed("delay-ms") {
		cfg.Fetch.DelayMs = o.delayMs
	}
	if f.Changed("workers") {
		cfg.Fetch.Workers = o.workers
	}
	if f.Changed("force") {
		cfg.Fetch.Force = o.force
	}
	if f.Changed("relaxed") {
		cfg.Fetch.Relaxed = o.relaxed
	}
	if f.Changed("skip-primary") {
		cfg.Fetch.SkipPrimary = o.skipPrimary
	}
}

func runFetch(cmd *cobra.Command, global *globalOptions, opts *fetchOptions) error {
	a, err := loadApp(global)
	if err != nil {
		return err
	}
	opts.applyFlags(cmd, a)
	if err := a.cfg.Fetch.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	batchCfg := &service.BatchConfig{Workers: a.cfg.Fetch.Workers}
	ledger, err := a.openLedger()
	if err != nil {
		return err
	}
	if ledger != nil {
		batchCfg.Recorder = ledger
	}
	publisher, err := a.newPublisher(ctx)
	if err != nil {
		return err
	}
	batchCfg.Publisher = publisher

	client := a.newFetchClient()
	acquisition := service.NewAcquisitionService(a.newRetriever(client), client, a.log)
	batch := service.NewBatchService(a.catalog, acquisition, a.log, batchCfg)

	fc := a.cfg.Fetch
	report, stats, err := batch.Run(ctx, service.BatchOptions{
		Start: opts.start,
		End:   opts.end,
		Fetch: service.FetchOptions{
			Root:        a.cfg.Output.Root,
			Target:      fc.Target,
			MaxPerQuery: fc.MaxPerQuery,
			Delay:       fc.Delay(),
			Relaxed:     fc.Relaxed,
			SkipPrimary: fc.SkipPrimary,
			Force:       fc.Force,
			MinBytes:    fc.MinBytes,
		},
	})
	if report == nil {
		return err
	}

	if _, ierr := gallery.BuildIndex(a.cfg.Output.Root, a.catalog.Sites()); ierr != nil {
		a.log.WithError(ierr).Warn("Failed to rebuild gallery index")
	} else if publisher != nil {
		if perr := publisher.PublishIndex(ctx, a.cfg.Output.Root); perr != nil {
			a.log.WithError(perr).Warn("Failed to publish gallery index")
		}
	}

	downloaded, degraded := report.Totals()
	cmd.Printf("Processed %d sites (%d-%d): %d images, %d skipped, %d need review in %s\n",
		len(report.Sites), report.Start, report.End, downloaded, stats.Skipped, degraded,
		stats.EndTime.Sub(stats.StartTime).Round(time.Second))
	if ledger != nil {
		printStatusCounts(ctx, cmd, ledger, report.RunID)
	}
	return err
}

// printStatusCounts reports how the batch's runs were recorded in the ledger.
func printStatusCounts(ctx context.Context, cmd *cobra.Command, ledger *repository.RunRepository, batchID string) {
	counts, err := ledger.CountByStatus(ctx, batchID)
	if err != nil {
		cmd.PrintErrf("Failed to read run ledger: %v\n", err)
		return
	}
	cmd.Printf("Ledger %s: %d completed, %d skipped, %d degraded\n", batchID,
		counts[domain.RunStatusCompleted], counts[domain.RunStatusSkipped], counts[domain.RunStatusDegraded])
}
