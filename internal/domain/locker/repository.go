package locker

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

// ---- catalog ----

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Locker, error) {
	var l Locker
	err := r.db.GetContext(ctx, &l, `
		SELECT id, name, months, price, created_at, updated_at
		FROM lockers WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Locker, error) {
	var l Locker
	err := tx.GetContext(ctx, &l, `
		SELECT id, name, months, price, created_at, updated_at
		FROM lockers WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) List(ctx context.Context) ([]*Locker, error) {
	lockers := []*Locker{}
	err := r.db.SelectContext(ctx, &lockers, `
		SELECT id, name, months, price, created_at, updated_at
		FROM lockers ORDER BY price ASC
	`)
	return lockers, err
}

func (r *Repository) Create(ctx context.Context, l *Locker) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lockers (id, name, months, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
	`, l.ID, l.Name, l.Months, l.Price)
	return err
}

func (r *Repository) Update(ctx context.Context, l *Locker) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE lockers SET name = $1, months = $2, price = $3, updated_at = now()
		WHERE id = $4
	`, l.Name, l.Months, l.Price, l.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLockerNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lockers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLockerNotFound
	}
	return nil
}

// ---- assignments ----

// NumberTakenTx reports whether a locker number is held by any active
// assignment. Checked inside the assignment transaction so the uniqueness
// decision and the insert see the same snapshot; a partial unique index on
// (locker_number) WHERE locker_status = 'active' backs it up under races.
func (r *Repository) NumberTakenTx(ctx context.Context, tx *sqlx.Tx, lockerNumber string) (bool, error) {
	var taken bool
	err := tx.GetContext(ctx, &taken, `
		SELECT EXISTS (
			SELECT 1 FROM member_lockers
			WHERE locker_number = $1 AND locker_status = 'active'
		)
	`, lockerNumber)
	return taken, err
}

func (r *Repository) CreateAssignmentTx(ctx context.Context, tx *sqlx.Tx, a *Assignment) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO member_lockers
			(id, member_id, locker_id, locker_number, start_date, end_date,
			 locker_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
	`, a.ID, a.MemberID, a.LockerID, a.LockerNumber, a.StartDate, a.EndDate, a.Status)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrLockerNumberTaken
		}
		return err
	}
	return nil
}

// LockAssignmentTx loads an assignment with a row lock so concurrent
// extensions of the same locker serialize.
func (r *Repository) LockAssignmentTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Assignment, error) {
	var a Assignment
	err := tx.GetContext(ctx, &a, `
		SELECT id, member_id, locker_id, locker_number, start_date, end_date,
		       locker_status, created_at, updated_at
		FROM member_lockers WHERE id = $1 FOR UPDATE
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ExtendAssignmentTx pushes the end date forward, keeping the same number.
func (r *Repository) ExtendAssignmentTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, endDate time.Time) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE member_lockers
		SET end_date = $1, locker_status = 'active', updated_at = now()
		WHERE id = $2
	`, endDate, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (r *Repository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*Assignment, error) {
	assignments := []*Assignment{}
	err := r.db.SelectContext(ctx, &assignments, `
		SELECT id, member_id, locker_id, locker_number, start_date, end_date,
		       locker_status, created_at, updated_at
		FROM member_lockers
		WHERE member_id = $1
		ORDER BY start_date DESC
	`, memberID)
	return assignments, err
}

func (r *Repository) ListActive(ctx context.Context) ([]*Assignment, error) {
	assignments := []*Assignment{}
	err := r.db.SelectContext(ctx, &assignments, `
		SELECT id, member_id, locker_id, locker_number, start_date, end_date,
		       locker_status, created_at, updated_at
		FROM member_lockers
		WHERE locker_status = 'active'
		ORDER BY locker_number ASC
	`)
	return assignments, err
}
