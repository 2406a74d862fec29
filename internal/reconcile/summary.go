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

// SummaryReconciler upserts bill summaries addressed by
// (legislation, version code). Upstream reuses a version code as the
// summary text evolves, so a second entry with a known code updates the
// row in place rather than being skipped as a duplicate.
type SummaryReconciler struct {
	legislations ports.LegislationStore
	summaries    ports.BillSummaryStore
	logger       *slog.Logger
}

// NewSummaryReconciler wires the legislation and summary stores.
func NewSummaryReconciler(legislations ports.LegislationStore, summaries ports.BillSummaryStore, logger *slog.Logger) *SummaryReconciler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SummaryReconciler{legislations: legislations, summaries: summaries, logger: logger}
}

// Reconcile processes all summary entries for one bill. The bill must
// already exist or the whole batch fails. Summary text is required;
// action date, description, and update date are optional and stored
// unset when absent or unparseable.
func (r *SummaryReconciler) Reconcile(ctx context.Context, ref domain.BillRef, entries []domain.SummaryRecord) (*domain.Legislation, *Result) {
	res := NewResult()

	nameID := identity.BillKey(ref.Congress, identity.NormalizeType(ref.Type), ref.Number)
	leg, err := r.legislations.FindByNameID(ctx, nameID)
	if err != nil {
		r.logger.Error("find legislation for summaries", "name_id", nameID, "error", err)
		leg = nil
	}
	if leg == nil {
		r.logger.Warn("summaries for unknown bill", "name_id", nameID, "count", len(entries))
		for range entries {
			res.Fail("summary", nameID, "bill not found")
		}
		return nil, res
	}

	for _, entry := range entries {
		if entry.Text == "" {
			res.Fail("summary", nameID, "missing summary text")
			continue
		}

		existing, err := r.summaries.FindByVersion(ctx, leg.ID, entry.VersionCode)
		if err != nil {
			r.logger.Error("find summary", "name_id", nameID, "version", entry.VersionCode, "error", err)
			res.Fail("summary", nameID, "store lookup failed")
			continue
		}

		actionDate := dates.Parse(entry.ActionDate)
		updateDate := dates.Parse(entry.UpdateDate)

		if existing == nil {
			summary := &domain.BillSummary{
				LegislationID: leg.ID,
				ActionDate:    actionDate,
				ActionDesc:    entry.ActionDesc,
				Text:          entry.Text,
				UpdateDate:    updateDate,
				VersionCode:   entry.VersionCode,
			}
			if err := r.summaries.Create(ctx, summary); err != nil {
				r.logger.Error("create summary", "name_id", nameID, "version", entry.VersionCode, "error", err)
				res.Fail("summary", nameID, "store create failed")
				continue
			}
			res.Success("summary", nameID, StatusCreated)
			continue
		}

		existing.ActionDate = actionDate
		existing.ActionDesc = entry.ActionDesc
		existing.Text = entry.Text
		existing.UpdateDate = updateDate
		if err := r.summaries.Update(ctx, existing); err != nil {
			r.logger.Error("update summary", "name_id", nameID, "version", entry.VersionCode, "error", err)
			res.Fail("summary", nameID, "store update failed")
			continue
		}
		res.Success("summary", nameID, StatusUpdated)
	}

	r.logger.Info("reconciled summaries", "name_id", nameID, "result", res.String())
	return leg, res
}
