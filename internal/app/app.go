package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/b1tburn3r20/speakup-ingest/internal/config"
	"github.com/b1tburn3r20/speakup-ingest/internal/infrastructure/clerk"
	"github.com/b1tburn3r20/speakup-ingest/internal/infrastructure/congress"
	"github.com/b1tburn3r20/speakup-ingest/internal/infrastructure/storage"
	"github.com/b1tburn3r20/speakup-ingest/internal/logging"
	"github.com/b1tburn3r20/speakup-ingest/internal/reconcile"
	"github.com/b1tburn3r20/speakup-ingest/internal/report"
	"github.com/b1tburn3r20/speakup-ingest/internal/usecase"
)

// Application wires configs to the pipeline and owns the store
// connection for the duration of one run.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sql.DB
	pipeline *usecase.Pipeline
}

// New connects the store and builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	baseLogger.Info("connected to store")

	bills := congress.NewClient(cfg.Congress.BaseURL, cfg.Congress.APIKey, nil, baseLogger.With("component", "source.congress"))
	votes := clerk.NewClient(cfg.Clerk.BaseURL, nil, baseLogger.With("component", "source.clerk"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Bills:        bills,
		Votes:        votes,
		Legislations: storage.NewLegislationStore(db),
		Actions:      storage.NewActionStore(db),
		Summaries:    storage.NewSummaryStore(db),
		VoteStore:    storage.NewVoteStore(db),
		MemberVotes:  storage.NewMemberVoteStore(db),
		Members:      storage.NewMemberStore(db),
		Pace:         cfg.Congress.Pace(),
		Logger:       baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, logger: baseLogger, db: db, pipeline: pipeline}, nil
}

// RunBills executes the bills ingestion run.
func (a *Application) RunBills(ctx context.Context) error {
	return a.run(func() (*reconcile.Result, error) {
		return a.pipeline.RunBills(ctx, a.cfg.Congress.Congress)
	})
}

// RunHouseVotes executes the House roll-call ingestion run.
func (a *Application) RunHouseVotes(ctx context.Context) error {
	return a.run(func() (*reconcile.Result, error) {
		return a.pipeline.RunHouseVotes(ctx, a.cfg.Clerk.Year)
	})
}

// run executes one pipeline run. Anything escaping the per-resource
// handlers is caught here, logged once, and the caller still reaches
// teardown via its deferred Close.
func (a *Application) run(fn func() (*reconcile.Result, error)) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.Error("fatal error during run", "panic", rec)
			err = fmt.Errorf("fatal error during run: %v", rec)
		}
	}()

	res, err := fn()
	if err != nil {
		a.logger.Error("run failed", "error", err)
		return err
	}

	if err := report.WriteCSV(a.cfg.Report.Path, res); err != nil {
		a.logger.Error("write run report", "path", a.cfg.Report.Path, "error", err)
	}
	return nil
}

// Close releases the store connection; called unconditionally at run
// teardown.
func (a *Application) Close() error {
	a.logger.Info("disconnecting from store")
	return a.db.Close()
}
