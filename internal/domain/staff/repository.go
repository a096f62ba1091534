package staff

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	var s Staff
	err := r.db.GetContext(ctx, &s, `SELECT * FROM staff WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*Staff, error) {
	var s Staff
	err := r.db.GetContext(ctx, &s, `SELECT * FROM staff WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) List(ctx context.Context) ([]*Staff, error) {
	staff := []*Staff{}
	err := r.db.SelectContext(ctx, &staff, `SELECT * FROM staff ORDER BY created_at ASC`)
	return staff, err
}

func (r *Repository) Create(ctx context.Context, s *Staff) error {
	query := `
		INSERT INTO staff (id, name, username, password_hash, role)
		VALUES (:id, :name, :username, :password_hash, :role)`
	_, err := r.db.NamedExecContext(ctx, query, s)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrUsernameTaken
	}
	return err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrStaffNotFound
	}
	return nil
}
