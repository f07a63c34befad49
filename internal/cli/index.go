package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/timmy/reconlens/internal/gallery"
)

func newIndexCommand(global *globalOptions) *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Regenerate the root gallery page and manifest.json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(global)
			if err != nil {
				return err
			}
			if root == "" {
				root = a.cfg.Output.Root
			}

			entries, err := gallery.BuildIndex(root, a.catalog.Sites())
			if err != nil {
				return err
			}

			ctx := a.log.WithContext(context.Background())
			publisher, err := a.newPublisher(ctx)
			if err != nil {
				return err
			}
			if publisher != nil {
				if err := publisher.PublishIndex(ctx, root); err != nil {
					return err
				}
			}

			total, empty := 0, 0
			for _, e := range entries {
				total += e.Count
				if e.Count == 0 {
					empty++
				}
			}
			cmd.Printf("Indexed %d sites, %d images, %d empty\n", len(entries), total, empty)
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "output root (default from config)")
	return cmd
}
