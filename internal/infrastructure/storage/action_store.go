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

// ActionStore persists bill actions. Rows are insert-only; dedup runs
// on the full (legislation, date, text, type) tuple.
type ActionStore struct {
	db *sql.DB
}

var _ ports.BillActionStore = (*ActionStore)(nil)

// NewActionStore wires a sql.DB handle.
func NewActionStore(db *sql.DB) *ActionStore {
	return &ActionStore{db: db}
}

// Exists reports whether an identical action row is already present.
func (s *ActionStore) Exists(ctx context.Context, legislationID string, actionDate time.Time, text, actionType string) (bool, error) {
	query, args, err := builder.
		Select("1").
		From("bill_actions").
		Where(sq.Eq{
			"legislation_id": legislationID,
			"action_date":    actionDate,
			"text":           text,
			"type":           actionType,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build action exists query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check action existence: %w", err)
	}
	return true, nil
}

// Create inserts a new action row.
func (s *ActionStore) Create(ctx context.Context, action *domain.BillAction) error {
	action.ID = uuid.NewString()
	action.CreatedAt = time.Now().UTC()

	query, args, err := builder.
		Insert("bill_actions").
		Columns("id", "legislation_id", "action_date", "text", "type", "action_code", "created_at").
		Values(action.ID, action.LegislationID, action.ActionDate, action.Text, action.Type, action.ActionCode, action.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build action insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert action: %w", err)
	}
	return nil
}
