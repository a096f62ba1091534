package membership

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Package, error) {
	var pkg Package
	err := r.db.GetContext(ctx, &pkg, `
		SELECT id, name, admission_amount, monthly_amount, months,
		       discount_quarterly, discount_half_yearly, discount_yearly,
		       created_at, updated_at
		FROM membership_packages
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetByIDTx reads a package inside an open transaction. Approval and
// package-change flows re-derive pricing from this row, never from
// client-submitted amounts.
func (r *Repository) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Package, error) {
	var pkg Package
	err := tx.GetContext(ctx, &pkg, `
		SELECT id, name, admission_amount, monthly_amount, months,
		       discount_quarterly, discount_half_yearly, discount_yearly,
		       created_at, updated_at
		FROM membership_packages
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *Repository) List(ctx context.Context) ([]*Package, error) {
	packages := []*Package{}
	err := r.db.SelectContext(ctx, &packages, `
		SELECT id, name, admission_amount, monthly_amount, months,
		       discount_quarterly, discount_half_yearly, discount_yearly,
		       created_at, updated_at
		FROM membership_packages
		ORDER BY monthly_amount ASC
	`)
	return packages, err
}

func (r *Repository) Create(ctx context.Context, pkg *Package) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO membership_packages
			(id, name, admission_amount, monthly_amount, months,
			 discount_quarterly, discount_half_yearly, discount_yearly,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	`, pkg.ID, pkg.Name, pkg.AdmissionAmount, pkg.MonthlyAmount, pkg.Months,
		pkg.DiscountQuarterly, pkg.DiscountHalfYearly, pkg.DiscountYearly)
	return err
}

func (r *Repository) Update(ctx context.Context, pkg *Package) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE membership_packages
		SET name = $1, admission_amount = $2, monthly_amount = $3, months = $4,
		    discount_quarterly = $5, discount_half_yearly = $6, discount_yearly = $7,
		    updated_at = now()
		WHERE id = $8
	`, pkg.Name, pkg.AdmissionAmount, pkg.MonthlyAmount, pkg.Months,
		pkg.DiscountQuarterly, pkg.DiscountHalfYearly, pkg.DiscountYearly, pkg.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPackageNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM membership_packages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPackageNotFound
	}
	return nil
}
