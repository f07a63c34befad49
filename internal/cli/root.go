// Package cli implements the recon command line: batch acquisition, manual
// curation, index regeneration and the gallery server.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/logger"
)

// Exit codes returned by Execute.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfigError = 2
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath  string
	catalogPath string
	logLevel    string
}

// NewRootCommand builds the recon command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "recon",
		Short: "Build curated galleries of historical reconstruction images",
		Long: `recon searches media archives for reconstruction-style images of
historical sites, downloads the best matches into one gallery per site
and lets you prune and renumber a gallery by hand.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./configs/config.yaml)")
	flags.StringVar(&opts.catalogPath, "catalog", "", "JSON site catalog replacing the built-in list")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newFetchCommand(opts),
		newCurateCommand(opts),
		newIndexCommand(opts),
		newServeCommand(opts),
	)
	return root
}

// Execute runs the command line and returns the process exit code. Fatal
// configuration errors map to ExitConfigError.
func Execute(args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)
	err := root.Execute()
	defer logger.Sync()
	return exitCode(err)
}

func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	logger.GetDefault().WithError(err).Error("Command failed")
	var cfgErr *configLoadError
	if domain.IsConfigError(err) || errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	return ExitFailure
}
