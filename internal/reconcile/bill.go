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

// BillReconciler upserts Legislation rows keyed by the derived name ID.
type BillReconciler struct {
	store  ports.LegislationStore
	logger *slog.Logger
}

// NewBillReconciler wires the legislation store.
func NewBillReconciler(store ports.LegislationStore, logger *slog.Logger) *BillReconciler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BillReconciler{store: store, logger: logger}
}

// Reconcile creates or updates the Legislation for one raw bill record.
// Congress, subtype, and number are all required; a record missing any
// of them is counted as failed and nothing is written. The natural key
// is set on create and never touched on update.
func (r *BillReconciler) Reconcile(ctx context.Context, rec domain.BillRecord) (*domain.Legislation, *Result) {
	res := NewResult()

	if rec.Congress == 0 || rec.Type == "" || rec.Number == "" {
		r.logger.Warn("bill record missing required fields",
			"congress", rec.Congress, "type", rec.Type, "number", rec.Number)
		res.Fail("bill", "", "missing congress, type, or number")
		return nil, res
	}

	billType := identity.NormalizeType(rec.Type)
	nameID := identity.BillKey(rec.Congress, billType, rec.Number)
	introduced := dates.Parse(rec.IntroducedDate)

	existing, err := r.store.FindByNameID(ctx, nameID)
	if err != nil {
		r.logger.Error("find legislation", "name_id", nameID, "error", err)
		res.Fail("bill", nameID, "store lookup failed")
		return nil, res
	}

	if existing == nil {
		leg := &domain.Legislation{
			NameID:         nameID,
			Congress:       rec.Congress,
			Type:           billType,
			Number:         rec.Number,
			Title:          rec.Title,
			URL:            rec.URL,
			IntroducedDate: introduced,
		}
		if err := r.store.Create(ctx, leg); err != nil {
			r.logger.Error("create legislation", "name_id", nameID, "error", err)
			res.Fail("bill", nameID, "store create failed")
			return nil, res
		}
		r.logger.Info("created bill", "name_id", nameID)
		res.Success("bill", nameID, StatusCreated)
		return leg, res
	}

	existing.Congress = rec.Congress
	existing.Type = billType
	existing.Number = rec.Number
	existing.Title = rec.Title
	existing.URL = rec.URL
	existing.IntroducedDate = introduced
	if err := r.store.Update(ctx, existing); err != nil {
		r.logger.Error("update legislation", "name_id", nameID, "error", err)
		res.Fail("bill", nameID, "store update failed")
		return nil, res
	}

	r.logger.Info("updated bill", "name_id", nameID)
	res.Success("bill", nameID, StatusUpdated)
	return existing, res
}
