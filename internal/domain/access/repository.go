package access

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, e *EntryLog) error {
	query := `
		INSERT INTO entry_logs (id, member_id, badge_id, member_name, result, occurred_at)
		VALUES (:id, :member_id, :badge_id, :member_name, :result, :occurred_at)`
	_, err := r.db.NamedExecContext(ctx, query, e)
	return err
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*EntryLog, error) {
	logs := []*EntryLog{}
	err := r.db.SelectContext(ctx, &logs,
		`SELECT * FROM entry_logs ORDER BY occurred_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	return logs, err
}

func (r *Repository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM entry_logs WHERE result = 'granted' AND occurred_at >= $1`, since)
	return count, err
}

// memberByBadge resolves a badge to the member row holding it.
type badgeMember struct {
	ID                uuid.UUID `db:"id"`
	Name              string    `db:"name"`
	IsApproved        bool      `db:"is_approved"`
	PaymentExpiryDate time.Time `db:"payment_expiry_date"`
}

func (r *Repository) memberByBadge(ctx context.Context, badgeID string) (*badgeMember, error) {
	var m badgeMember
	err := r.db.GetContext(ctx, &m,
		`SELECT id, name, is_approved, payment_expiry_date FROM members WHERE badge_id = $1`, badgeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
