package cli

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/doccat-labs/doccat/internal/branding"
	"github.com/doccat-labs/doccat/internal/buildinfo"
	"github.com/doccat-labs/doccat/internal/config"
	"github.com/spf13/cobra"
)

var (
	build buildinfo.Info

	catalogSources []string
	verbose        bool

	logger = log.New(io.Discard, "", 0)
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads the type catalogs documentation generators emit (the root index of
docs, modules, packages and declared types), validates them, answers lookups,
and re-serializes them as JSON, YAML or the generator's script form.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if verbose {
			logger = log.New(cmd.ErrOrStderr(), branding.CLIName()+": ", 0)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&catalogSources, "catalog", "c", nil,
		"Catalog source: file path, '-' for stdin, or s3://bucket/key (repeatable; default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	build = buildinfo.Info{Version: version, Commit: commit, Date: date}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
