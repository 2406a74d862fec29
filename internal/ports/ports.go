package ports

import (
	"context"
	"time"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
)

// BillSource pulls bill resources from the upstream legislative API.
// Implementations return an error for any non-success upstream status;
// the pipeline never retries, it counts the resource as failed.
type BillSource interface {
	LatestBills(ctx context.Context, congress int) ([]domain.BillRef, error)
	BillDetail(ctx context.Context, ref domain.BillRef) (*domain.BillRecord, error)
	BillActions(ctx context.Context, ref domain.BillRef) ([]domain.ActionRecord, error)
	BillSummaries(ctx context.Context, ref domain.BillRef) ([]domain.SummaryRecord, error)
	RelatedBills(ctx context.Context, ref domain.BillRef) (int, error)
	Cosponsors(ctx context.Context, ref domain.BillRef) (int, error)
}

// VoteSource enumerates and fetches House roll-call votes.
type VoteSource interface {
	RollCalls(ctx context.Context, year int) ([]domain.RollCallRef, error)
	RollCall(ctx context.Context, ref domain.RollCallRef) (*domain.VoteRecord, error)
}

// LegislationStore persists bills keyed by their derived name ID.
// Find methods return (nil, nil) when no row matches.
type LegislationStore interface {
	FindByNameID(ctx context.Context, nameID string) (*domain.Legislation, error)
	Create(ctx context.Context, leg *domain.Legislation) error
	Update(ctx context.Context, leg *domain.Legislation) error
}

// BillActionStore persists insert-only action rows, deduplicated by the
// full (legislation, date, text, type) tuple.
type BillActionStore interface {
	Exists(ctx context.Context, legislationID string, actionDate time.Time, text, actionType string) (bool, error)
	Create(ctx context.Context, action *domain.BillAction) error
}

// BillSummaryStore persists summary versions addressed by
// (legislation, version code).
type BillSummaryStore interface {
	FindByVersion(ctx context.Context, legislationID, versionCode string) (*domain.BillSummary, error)
	Create(ctx context.Context, summary *domain.BillSummary) error
	Update(ctx context.Context, summary *domain.BillSummary) error
}

// VoteStore persists roll-call headers and their derived totals.
type VoteStore interface {
	FindByRollCall(ctx context.Context, congress int, chamber string, rollNumber int) (*domain.Vote, error)
	Create(ctx context.Context, vote *domain.Vote) error
	Update(ctx context.Context, vote *domain.Vote) error
	UpdateTotals(ctx context.Context, voteID string, totals domain.VoteTotals) error
}

// MemberVoteStore persists per-member cast rows for a vote.
type MemberVoteStore interface {
	MemberIDsForVote(ctx context.Context, voteID string) (map[string]bool, error)
	CreateMany(ctx context.Context, votes []domain.MemberVote) error
}

// MemberStore reads the member reference dataset owned by a separate
// ingestion process. Consumed exactly once per run by the member cache.
type MemberStore interface {
	FindAll(ctx context.Context) ([]domain.Member, error)
}
