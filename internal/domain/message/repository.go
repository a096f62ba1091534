package message

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, l *Log) error {
	query := `
		INSERT INTO message_logs (id, recipient, body, status)
		VALUES (:id, :recipient, :body, :status)`
	_, err := r.db.NamedExecContext(ctx, query, l)
	return err
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Log, error) {
	logs := []*Log{}
	err := r.db.SelectContext(ctx, &logs,
		`SELECT * FROM message_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	return logs, err
}

// ExpiringPhones returns phone numbers of approved members whose paid
// period ends within the given number of days.
func (r *Repository) ExpiringPhones(ctx context.Context, days int) ([]string, error) {
	phones := []string{}
	err := r.db.SelectContext(ctx, &phones, `
		SELECT phone FROM members
		WHERE is_approved = TRUE
		  AND payment_expiry_date BETWEEN NOW() AND NOW() + ($1 || ' days')::interval`, days)
	return phones, err
}
