package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
	"github.com/b1tburn3r20/speakup-ingest/internal/ports"
)

// VoteStore persists roll-call votes and their derived totals.
type VoteStore struct {
	db *sql.DB
}

var _ ports.VoteStore = (*VoteStore)(nil)

// NewVoteStore wires a sql.DB handle.
func NewVoteStore(db *sql.DB) *VoteStore {
	return &VoteStore{db: db}
}

// FindByRollCall returns the vote identified by
// (congress, chamber, roll number), or nil.
func (s *VoteStore) FindByRollCall(ctx context.Context, congress int, chamber string, rollNumber int) (*domain.Vote, error) {
	query, args, err := builder.
		Select("id", "congress", "chamber", "roll_number", "session", "vote_date", "question", "result", "description",
			"legislation_number", "legislation_name_id",
			"total_yea", "total_nay", "total_present", "total_not_voting", "total_voting",
			"created_at", "updated_at").
		From("votes").
		Where(sq.Eq{"congress": congress, "chamber": chamber, "roll_number": rollNumber}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build vote query: %w", err)
	}

	var vote domain.Vote
	row := s.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&vote.ID, &vote.Congress, &vote.Chamber, &vote.RollNumber, &vote.Session, &vote.VoteDate,
		&vote.Question, &vote.Result, &vote.Description,
		&vote.LegislationNumber, &vote.LegislationNameID,
		&vote.TotalYea, &vote.TotalNay, &vote.TotalPresent, &vote.TotalNotVoting, &vote.TotalVoting,
		&vote.CreatedAt, &vote.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan vote: %w", err)
	}
	return &vote, nil
}

// Create inserts a new vote with zeroed totals.
func (s *VoteStore) Create(ctx context.Context, vote *domain.Vote) error {
	vote.ID = uuid.NewString()
	vote.CreatedAt = time.Now().UTC()
	vote.UpdatedAt = vote.CreatedAt

	query, args, err := builder.
		Insert("votes").
		Columns("id", "congress", "chamber", "roll_number", "session", "vote_date", "question", "result", "description",
			"legislation_number", "legislation_name_id",
			"total_yea", "total_nay", "total_present", "total_not_voting", "total_voting",
			"created_at", "updated_at").
		Values(vote.ID, vote.Congress, vote.Chamber, vote.RollNumber, vote.Session, vote.VoteDate, vote.Question, vote.Result, vote.Description,
			vote.LegislationNumber, vote.LegislationNameID,
			vote.TotalYea, vote.TotalNay, vote.TotalPresent, vote.TotalNotVoting, vote.TotalVoting,
			vote.CreatedAt, vote.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build vote insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

// Update rewrites the mutable header fields, leaving totals untouched.
func (s *VoteStore) Update(ctx context.Context, vote *domain.Vote) error {
	vote.UpdatedAt = time.Now().UTC()

	query, args, err := builder.
		Update("votes").
		Set("session", vote.Session).
		Set("vote_date", vote.VoteDate).
		Set("question", vote.Question).
		Set("result", vote.Result).
		Set("description", vote.Description).
		Set("legislation_number", vote.LegislationNumber).
		Set("legislation_name_id", vote.LegislationNameID).
		Set("updated_at", vote.UpdatedAt).
		Where(sq.Eq{"id": vote.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build vote update: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update vote: %w", err)
	}
	return nil
}

// UpdateTotals overwrites every total column with a freshly recomputed
// tally.
func (s *VoteStore) UpdateTotals(ctx context.Context, voteID string, totals domain.VoteTotals) error {
	query, args, err := builder.
		Update("votes").
		Set("total_yea", totals.Yea).
		Set("total_nay", totals.Nay).
		Set("total_present", totals.Present).
		Set("total_not_voting", totals.NotVoting).
		Set("total_voting", totals.Voting()).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": voteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build totals update: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update vote totals: %w", err)
	}
	return nil
}
