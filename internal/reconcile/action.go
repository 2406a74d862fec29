package reconcile

import (
	"context"
	"io"
	"log/slog"

	"github.com/b1tburn3r20/speakup-ingest/internal/dates"
	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
	"github.com/b1tburn3r20/speakup-ingest/internal/identity"
	"github.com/b1tburn3r20/speakup-ingest/internal/ports"
)

// ActionReconciler inserts bill actions. Actions carry no upstream
// identifier, so identity is textual: a row matching the full
// (legislation, date, text, type) tuple is already present and is
// skipped, never updated.
type ActionReconciler struct {
	legislations ports.LegislationStore
	actions      ports.BillActionStore
	logger       *slog.Logger
}

// NewActionReconciler wires the legislation and action stores.
func NewActionReconciler(legislations ports.LegislationStore, actions ports.BillActionStore, logger *slog.Logger) *ActionReconciler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ActionReconciler{legislations: legislations, actions: actions, logger: logger}
}

// Reconcile processes all action entries for one bill. The bill must
// already exist; if it cannot be resolved the whole batch fails, since
// every row needs the owning legislation ID. Entries missing a date,
// text, or type, or whose date does not parse, are skipped and counted
// as failed.
func (r *ActionReconciler) Reconcile(ctx context.Context, ref domain.BillRef, entries []domain.ActionRecord) (*domain.Legislation, *Result) {
	res := NewResult()

	nameID := identity.BillKey(ref.Congress, identity.NormalizeType(ref.Type), ref.Number)
	leg, err := r.legislations.FindByNameID(ctx, nameID)
	if err != nil {
		r.logger.Error("find legislation for actions", "name_id", nameID, "error", err)
		leg = nil
	}
	if leg == nil {
		r.logger.Warn("actions for unknown bill", "name_id", nameID, "count", len(entries))
		for range entries {
			res.Fail("action", nameID, "bill not found")
		}
		return nil, res
	}

	for _, entry := range entries {
		if entry.Text == "" || entry.Type == "" {
			res.Fail("action", nameID, "missing text or type")
			continue
		}
		actionDate := dates.Parse(entry.ActionDate)
		if actionDate == nil {
			res.Fail("action", nameID, "missing or unparseable action date")
			continue
		}

		exists, err := r.actions.Exists(ctx, leg.ID, *actionDate, entry.Text, entry.Type)
		if err != nil {
			r.logger.Error("check action existence", "name_id", nameID, "error", err)
			res.Fail("action", nameID, "store lookup failed")
			continue
		}
		if exists {
			res.Success("action", nameID, StatusSkipped)
			continue
		}

		action := &domain.BillAction{
			LegislationID: leg.ID,
			ActionDate:    *actionDate,
			Text:          entry.Text,
			Type:          entry.Type,
			ActionCode:    entry.ActionCode,
		}
		if err := r.actions.Create(ctx, action); err != nil {
			r.logger.Error("create action", "name_id", nameID, "error", err)
			res.Fail("action", nameID, "store create failed")
			continue
		}
		res.Success("action", nameID, StatusCreated)
	}

	r.logger.Info("reconciled actions", "name_id", nameID, "result", res.String())
	return leg, res
}
