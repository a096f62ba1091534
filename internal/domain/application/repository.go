package application

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

func (r *Repository) CreateRegistration(ctx context.Context, app *RegistrationApplication) error {
	query := `
		INSERT INTO registration_applications (id, name, phone, gender, address, package_id, months, paid_amount, payment_mode)
		VALUES (:id, :name, :phone, :gender, :address, :package_id, :months, :paid_amount, :payment_mode)`
	_, err := r.db.NamedExecContext(ctx, query, app)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrPhonePending
	}
	return err
}

func (r *Repository) GetRegistration(ctx context.Context, id uuid.UUID) (*RegistrationApplication, error) {
	var app RegistrationApplication
	err := r.db.GetContext(ctx, &app, `SELECT * FROM registration_applications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *Repository) ListRegistrations(ctx context.Context) ([]*RegistrationApplication, error) {
	apps := []*RegistrationApplication{}
	err := r.db.SelectContext(ctx, &apps, `SELECT * FROM registration_applications ORDER BY created_at ASC`)
	return apps, err
}

func (r *Repository) DeleteRegistration(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM registration_applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// DeleteRegistrationTx removes the application inside an approval
// transaction. A row that vanished since it was read aborts the approval.
func (r *Repository) DeleteRegistrationTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM registration_applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *Repository) CreateRenewal(ctx context.Context, app *RenewalApplication) error {
	query := `
		INSERT INTO renewal_applications (id, member_id, months, paid_amount, payment_mode)
		VALUES (:id, :member_id, :months, :paid_amount, :payment_mode)`
	_, err := r.db.NamedExecContext(ctx, query, app)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrPhonePending
	}
	return err
}

func (r *Repository) GetRenewal(ctx context.Context, id uuid.UUID) (*RenewalApplication, error) {
	var app RenewalApplication
	err := r.db.GetContext(ctx, &app, `SELECT * FROM renewal_applications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *Repository) ListRenewals(ctx context.Context) ([]*RenewalApplication, error) {
	apps := []*RenewalApplication{}
	err := r.db.SelectContext(ctx, &apps, `SELECT * FROM renewal_applications ORDER BY created_at ASC`)
	return apps, err
}

func (r *Repository) DeleteRenewal(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM renewal_applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *Repository) DeleteRenewalTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM renewal_applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
