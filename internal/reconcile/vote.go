package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/b1tburn3r20/speakup-ingest/internal/dates"
	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
	"github.com/b1tburn3r20/speakup-ingest/internal/identity"
	"github.com/b1tburn3r20/speakup-ingest/internal/ports"
)

// VoteReconciler upserts roll-call headers, unique per
// (congress, chamber, roll number). The linked-bill fields are not part
// of vote identity; they may be absent or change between fetches.
type VoteReconciler struct {
	store  ports.VoteStore
	now    func() time.Time
	logger *slog.Logger
}

// NewVoteReconciler wires the vote store. now is overridable for tests;
// nil means time.Now.
func NewVoteReconciler(store ports.VoteStore, now func() time.Time, logger *slog.Logger) *VoteReconciler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &VoteReconciler{store: store, now: now, logger: logger}
}

// Reconcile creates or updates the Vote for one roll-call header.
// Congress and roll number are required; session is recorded when
// present but never required. Unlike actions and summaries, a vote date
// that fails to parse falls back to the current time so a vote row
// never carries an unset date. Totals are zeroed on create and left
// untouched on update; only member-vote processing rewrites them.
func (r *VoteReconciler) Reconcile(ctx context.Context, rec domain.VoteRecord) (*domain.Vote, *Result) {
	res := NewResult()

	if rec.Congress == 0 || rec.RollNumber == 0 {
		r.logger.Warn("vote record missing required fields",
			"congress", rec.Congress, "roll", rec.RollNumber)
		res.Fail("vote", "", "missing congress or roll number")
		return nil, res
	}

	voteDate := r.now().UTC()
	if parsed := dates.Parse(rec.StartDate); parsed != nil {
		voteDate = *parsed
	}

	var linkNameID string
	if rec.LegislationNumber != "" && identity.ValidBillType(rec.LegislationType) {
		linkNameID = identity.BillKey(rec.Congress, identity.NormalizeType(rec.LegislationType), rec.LegislationNumber)
	}

	existing, err := r.store.FindByRollCall(ctx, rec.Congress, domain.ChamberHouse, rec.RollNumber)
	if err != nil {
		r.logger.Error("find vote", "congress", rec.Congress, "roll", rec.RollNumber, "error", err)
		res.Fail("vote", voteKey(rec.Congress, rec.RollNumber), "store lookup failed")
		return nil, res
	}

	if existing == nil {
		vote := &domain.Vote{
			Congress:          rec.Congress,
			Chamber:           domain.ChamberHouse,
			RollNumber:        rec.RollNumber,
			Session:           rec.Session,
			VoteDate:          voteDate,
			Question:          rec.Question,
			Result:            rec.Result,
			Description:       rec.Description,
			LegislationNumber: rec.LegislationNumber,
			LegislationNameID: linkNameID,
		}
		if err := r.store.Create(ctx, vote); err != nil {
			r.logger.Error("create vote", "congress", rec.Congress, "roll", rec.RollNumber, "error", err)
			res.Fail("vote", voteKey(rec.Congress, rec.RollNumber), "store create failed")
			return nil, res
		}
		r.logger.Info("created vote", "congress", rec.Congress, "roll", rec.RollNumber)
		res.Success("vote", voteKey(rec.Congress, rec.RollNumber), StatusCreated)
		return vote, res
	}

	existing.Session = rec.Session
	existing.VoteDate = voteDate
	existing.Question = rec.Question
	existing.Result = rec.Result
	existing.Description = rec.Description
	existing.LegislationNumber = rec.LegislationNumber
	existing.LegislationNameID = linkNameID
	if err := r.store.Update(ctx, existing); err != nil {
		r.logger.Error("update vote", "congress", rec.Congress, "roll", rec.RollNumber, "error", err)
		res.Fail("vote", voteKey(rec.Congress, rec.RollNumber), "store update failed")
		return nil, res
	}

	r.logger.Info("updated vote", "congress", rec.Congress, "roll", rec.RollNumber)
	res.Success("vote", voteKey(rec.Congress, rec.RollNumber), StatusUpdated)
	return existing, res
}

func voteKey(congress, roll int) string {
	return fmt.Sprintf("%d/%s/%d", congress, domain.ChamberHouse, roll)
}
