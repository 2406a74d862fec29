package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
)

func TestVoteReconcileCreateThenUpdate(t *testing.T) {
	t.Parallel()

	store := newFakeVoteStore()
	rec := NewVoteReconciler(store, nil, nil)
	ctx := context.Background()

	record := domain.VoteRecord{
		Congress:          119,
		Session:           1,
		RollNumber:        17,
		StartDate:         "2025-01-09T13:57:00Z",
		Question:          "On Passage",
		Result:            "Passed",
		LegislationType:   "HR",
		LegislationNumber: "23",
	}

	vote, res := rec.Reconcile(ctx, record)
	if vote == nil {
		t.Fatalf("create failed: %+v", res.Outcomes)
	}
	if vote.Chamber != domain.ChamberHouse {
		t.Fatalf("unexpected chamber: %s", vote.Chamber)
	}
	if vote.LegislationNameID != "119HR23" {
		t.Fatalf("unexpected link key: %s", vote.LegislationNameID)
	}
	if vote.TotalYea != 0 || vote.TotalVoting != 0 {
		t.Fatalf("totals must start at zero")
	}

	// Simulate a member-vote pass having written totals.
	store.UpdateTotals(ctx, vote.ID, domain.VoteTotals{Yea: 200, Nay: 100})

	record.Result = "Failed"
	updated, res := rec.Reconcile(ctx, record)
	if updated == nil || res.Outcomes[0].Status != StatusUpdated {
		t.Fatalf("expected update: %s", res)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected one vote row, got %d", len(store.rows))
	}

	row, _ := store.byID(vote.ID)
	if row.Result != "Failed" {
		t.Fatalf("result not updated: %s", row.Result)
	}
	if row.TotalYea != 200 || row.TotalNay != 100 {
		t.Fatalf("header update must leave totals untouched: yea=%d nay=%d", row.TotalYea, row.TotalNay)
	}
}

func TestVoteReconcileDateFallsBackToNow(t *testing.T) {
	t.Parallel()

	store := newFakeVoteStore()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := NewVoteReconciler(store, func() time.Time { return fixed }, nil)

	vote, res := rec.Reconcile(context.Background(), domain.VoteRecord{Congress: 119, RollNumber: 3, StartDate: "n/a"})
	if vote == nil {
		t.Fatalf("reconcile failed: %+v", res.Outcomes)
	}
	if !vote.VoteDate.Equal(fixed) {
		t.Fatalf("expected fallback to now, got %v", vote.VoteDate)
	}
}

func TestVoteReconcileRequiresCongressAndRoll(t *testing.T) {
	t.Parallel()

	rec := NewVoteReconciler(newFakeVoteStore(), nil, nil)

	if vote, res := rec.Reconcile(context.Background(), domain.VoteRecord{RollNumber: 3}); vote != nil || res.Failed != 1 {
		t.Fatalf("missing congress should fail: %s", res)
	}
	if vote, res := rec.Reconcile(context.Background(), domain.VoteRecord{Congress: 119}); vote != nil || res.Failed != 1 {
		t.Fatalf("missing roll number should fail: %s", res)
	}
}

func TestVoteReconcileLinkOptional(t *testing.T) {
	t.Parallel()

	store := newFakeVoteStore()
	rec := NewVoteReconciler(store, nil, nil)

	// Quorum calls and unrecognized subtypes carry no usable bill link.
	vote, _ := rec.Reconcile(context.Background(), domain.VoteRecord{
		Congress:          119,
		RollNumber:        5,
		LegislationType:   "QUORUM",
		LegislationNumber: "0",
	})
	if vote == nil {
		t.Fatalf("vote without valid link should still persist")
	}
	if vote.LegislationNameID != "" {
		t.Fatalf("unrecognized subtype must not derive a link key, got %s", vote.LegislationNameID)
	}
}
