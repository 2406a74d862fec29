package cli

import (
	"github.com/spf13/cobra"

	"github.com/b1tburn3r20/speakup-ingest/internal/app"
	"github.com/b1tburn3r20/speakup-ingest/internal/config"
	"github.com/b1tburn3r20/speakup-ingest/internal/logging"
)

// NewHouseVotesCommand creates the House roll-call ingestion subcommand.
func NewHouseVotesCommand(opts *RootOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "house-votes",
		Short: "Ingest House roll-call votes and per-member positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if year != 0 {
				cfg.Clerk.Year = year
			}
			if opts.LogLevel != "" {
				cfg.Logging.Level = opts.LogLevel
			}

			logger, closer, err := logging.NewWithFile(cfg.Logging.Level, cfg.Logging.Dir)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.RunHouseVotes(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "calendar year of roll calls to ingest (default from config)")

	return cmd
}
