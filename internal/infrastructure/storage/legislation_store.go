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

// LegislationStore persists bills into the legislations table.
type LegislationStore struct {
	db *sql.DB
}

var _ ports.LegislationStore = (*LegislationStore)(nil)

// NewLegislationStore wires a sql.DB handle.
func NewLegislationStore(db *sql.DB) *LegislationStore {
	return &LegislationStore{db: db}
}

// FindByNameID returns the bill with the given natural key, or nil.
func (s *LegislationStore) FindByNameID(ctx context.Context, nameID string) (*domain.Legislation, error) {
	query, args, err := builder.
		Select("id", "name_id", "congress", "type", "number", "title", "url", "introduced_date", "created_at", "updated_at").
		From("legislations").
		Where(sq.Eq{"name_id": nameID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build legislation query: %w", err)
	}

	var (
		leg        domain.Legislation
		introduced sql.NullTime
	)
	row := s.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&leg.ID, &leg.NameID, &leg.Congress, &leg.Type, &leg.Number, &leg.Title, &leg.URL, &introduced, &leg.CreatedAt, &leg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan legislation: %w", err)
	}
	if introduced.Valid {
		t := introduced.Time
		leg.IntroducedDate = &t
	}
	return &leg, nil
}

// Create inserts a new bill, assigning its ID and timestamps.
func (s *LegislationStore) Create(ctx context.Context, leg *domain.Legislation) error {
	leg.ID = uuid.NewString()
	leg.CreatedAt = time.Now().UTC()
	leg.UpdatedAt = leg.CreatedAt

	query, args, err := builder.
		Insert("legislations").
		Columns("id", "name_id", "congress", "type", "number", "title", "url", "introduced_date", "created_at", "updated_at").
		Values(leg.ID, leg.NameID, leg.Congress, leg.Type, leg.Number, leg.Title, leg.URL, nullTime(leg.IntroducedDate), leg.CreatedAt, leg.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build legislation insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert legislation %s: %w", leg.NameID, err)
	}
	return nil
}

// Update rewrites the mutable fields of an existing bill. The natural
// key is never part of the update set.
func (s *LegislationStore) Update(ctx context.Context, leg *domain.Legislation) error {
	leg.UpdatedAt = time.Now().UTC()

	query, args, err := builder.
		Update("legislations").
		Set("congress", leg.Congress).
		Set("type", leg.Type).
		Set("number", leg.Number).
		Set("title", leg.Title).
		Set("url", leg.URL).
		Set("introduced_date", nullTime(leg.IntroducedDate)).
		Set("updated_at", leg.UpdatedAt).
		Where(sq.Eq{"id": leg.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build legislation update: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update legislation %s: %w", leg.NameID, err)
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
