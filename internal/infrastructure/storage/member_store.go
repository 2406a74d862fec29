package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
	"github.com/b1tburn3r20/speakup-ingest/internal/ports"
)

// MemberStore reads the member reference table. Members are owned by a
// separate ingestion process; this pipeline never writes them.
type MemberStore struct {
	db *sql.DB
}

var _ ports.MemberStore = (*MemberStore)(nil)

// NewMemberStore wires a sql.DB handle.
func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

// FindAll loads the full member set for the cache build.
func (s *MemberStore) FindAll(ctx context.Context) ([]domain.Member, error) {
	query, args, err := builder.
		Select("id", "bioguide_id", "name", "party", "state").
		From("members").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build members query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.BioguideID, &m.Name, &m.Party, &m.State); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

// MemberVoteStore persists per-member cast rows.
type MemberVoteStore struct {
	db *sql.DB
}

var _ ports.MemberVoteStore = (*MemberVoteStore)(nil)

// NewMemberVoteStore wires a sql.DB handle.
func NewMemberVoteStore(db *sql.DB) *MemberVoteStore {
	return &MemberVoteStore{db: db}
}

// MemberIDsForVote preloads the members already recorded against one
// vote, so re-runs can skip existing pairs without per-row lookups.
func (s *MemberVoteStore) MemberIDsForVote(ctx context.Context, voteID string) (map[string]bool, error) {
	query, args, err := builder.
		Select("member_id").
		From("member_votes").
		Where(sq.Eq{"vote_id": voteID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build member-vote query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query member votes: %w", err)
	}
	defer rows.Close()

	recorded := map[string]bool{}
	for rows.Next() {
		var memberID string
		if err := rows.Scan(&memberID); err != nil {
			return nil, fmt.Errorf("scan member id: %w", err)
		}
		recorded[memberID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate member votes: %w", err)
	}
	return recorded, nil
}

// CreateMany inserts all staged rows for one vote in a single statement.
func (s *MemberVoteStore) CreateMany(ctx context.Context, votes []domain.MemberVote) error {
	if len(votes) == 0 {
		return nil
	}

	insert := builder.
		Insert("member_votes").
		Columns("id", "vote_id", "member_id", "position", "party", "state", "created_at")

	now := time.Now().UTC()
	for i := range votes {
		votes[i].ID = uuid.NewString()
		votes[i].CreatedAt = now
		insert = insert.Values(votes[i].ID, votes[i].VoteID, votes[i].MemberID, string(votes[i].Position), votes[i].Party, votes[i].State, now)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build member-vote insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert member votes: %w", err)
	}
	return nil
}
