package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/timmy/reconlens/internal/gallery"
	"github.com/timmy/reconlens/internal/logger"
	"github.com/timmy/reconlens/internal/service"
)

type curateOptions struct {
	site   string
	remove string
	root   string
}

func newCurateCommand(global *globalOptions) *cobra.Command {
	opts := &curateOptions{}
	cmd := &cobra.Command{
		Use:     "curate",
		Short:   "Remove images from a site gallery and renumber the rest",
		Example: `  recon curate --site petra --remove 3,8,14-17`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCurate(cmd, global, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.site, "site", "", "site slug")
	f.StringVar(&opts.remove, "remove", "", "indices to remove: comma separated values and inclusive ranges")
	f.StringVar(&opts.root, "root", "", "output root (default from config)")
	_ = cmd.MarkFlagRequired("site")
	_ = cmd.MarkFlagRequired("remove")
	return cmd
}

func runCurate(cmd *cobra.Command, global *globalOptions, opts *curateOptions) error {
	a, err := loadApp(global)
	if err != nil {
		return err
	}
	root := a.cfg.Output.Root
	if opts.root != "" {
		root = opts.root
	}

	site, err := a.catalog.Lookup(opts.site)
	if err != nil {
		return err
	}
	remove, err := service.ParseIndices(opts.remove)
	if err != nil {
		return err
	}

	ctx := logger.SetSite(a.log.WithContext(context.Background()), site.Slug)
	result, err := service.NewCurator(a.log).Curate(ctx, root, site, remove)
	if err != nil {
		return err
	}

	if _, err := gallery.BuildIndex(root, a.catalog.Sites()); err != nil {
		a.log.WithError(err).Warn("Failed to rebuild gallery index")
	}
	publisher, err := a.newPublisher(ctx)
	if err != nil {
		return err
	}
	if publisher != nil {
		if _, err := publisher.PublishSite(ctx, root, site.Slug); err != nil {
			return err
		}
		if err := publisher.PublishIndex(ctx, root); err != nil {
			return err
		}
	}

	cmd.Printf("%s: removed %d, dropped %d missing, %d images remain\n",
		site.Slug, result.Removed, result.Missing, len(result.Records))
	return nil
}
