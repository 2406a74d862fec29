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

// SummaryStore persists bill summaries addressed by
// (legislation, version code).
type SummaryStore struct {
	db *sql.DB
}

var _ ports.BillSummaryStore = (*SummaryStore)(nil)

// NewSummaryStore wires a sql.DB handle.
func NewSummaryStore(db *sql.DB) *SummaryStore {
	return &SummaryStore{db: db}
}

// FindByVersion returns the summary row for a version code, or nil.
func (s *SummaryStore) FindByVersion(ctx context.Context, legislationID, versionCode string) (*domain.BillSummary, error) {
	query, args, err := builder.
		Select("id", "legislation_id", "action_date", "action_desc", "text", "update_date", "version_code", "created_at", "updated_at").
		From("bill_summaries").
		Where(sq.Eq{"legislation_id": legislationID, "version_code": versionCode}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build summary query: %w", err)
	}

	var (
		summary    domain.BillSummary
		actionDate sql.NullTime
		updateDate sql.NullTime
	)
	row := s.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&summary.ID, &summary.LegislationID, &actionDate, &summary.ActionDesc, &summary.Text, &updateDate, &summary.VersionCode, &summary.CreatedAt, &summary.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan summary: %w", err)
	}
	if actionDate.Valid {
		t := actionDate.Time
		summary.ActionDate = &t
	}
	if updateDate.Valid {
		t := updateDate.Time
		summary.UpdateDate = &t
	}
	return &summary, nil
}

// Create inserts a new summary version.
func (s *SummaryStore) Create(ctx context.Context, summary *domain.BillSummary) error {
	summary.ID = uuid.NewString()
	summary.CreatedAt = time.Now().UTC()
	summary.UpdatedAt = summary.CreatedAt

	query, args, err := builder.
		Insert("bill_summaries").
		Columns("id", "legislation_id", "action_date", "action_desc", "text", "update_date", "version_code", "created_at", "updated_at").
		Values(summary.ID, summary.LegislationID, nullTime(summary.ActionDate), summary.ActionDesc, summary.Text, nullTime(summary.UpdateDate), summary.VersionCode, summary.CreatedAt, summary.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build summary insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of an existing summary version.
func (s *SummaryStore) Update(ctx context.Context, summary *domain.BillSummary) error {
	summary.UpdatedAt = time.Now().UTC()

	query, args, err := builder.
		Update("bill_summaries").
		Set("action_date", nullTime(summary.ActionDate)).
		Set("action_desc", summary.ActionDesc).
		Set("text", summary.Text).
		Set("update_date", nullTime(summary.UpdateDate)).
		Set("updated_at", summary.UpdatedAt).
		Where(sq.Eq{"id": summary.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build summary update: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update summary: %w", err)
	}
	return nil
}
