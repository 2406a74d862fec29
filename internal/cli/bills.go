package cli

import (
	"github.com/spf13/cobra"

	"github.com/b1tburn3r20/speakup-ingest/internal/app"
	"github.com/b1tburn3r20/speakup-ingest/internal/config"
	"github.com/b1tburn3r20/speakup-ingest/internal/logging"
)

// NewBillsCommand creates the bills ingestion subcommand.
func NewBillsCommand(opts *RootOptions) *cobra.Command {
	var congress int

	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Ingest the latest bills, their actions, and summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if congress != 0 {
				cfg.Congress.Congress = congress
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

			return application.RunBills(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&congress, "congress", 0, "congress number to ingest (default from config)")

	return cmd
}
