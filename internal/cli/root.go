// Package cli defines the congressimport command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all subcommands.
type RootOptions struct {
	LogLevel string
}

// NewRootCommand creates the root command for congressimport.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "congressimport",
		Short: "Ingest legislative records into the speakup store",
		Long: "congressimport pulls bills, actions, summaries, and House roll-call\n" +
			"votes from their public sources and upserts them into Postgres.\n" +
			"Runs are idempotent: re-ingesting the same data converges to the\n" +
			"same persisted state.",
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override configured log level (debug|info|warn|error)")

	cmd.AddCommand(NewBillsCommand(opts))
	cmd.AddCommand(NewHouseVotesCommand(opts))

	return cmd
}
