package member

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const memberColumns = `
	id, name, phone, gender, address, photo_url, thumb_url, credit,
	membership_package_id, badge_id, start_date, end_date,
	payment_expiry_date, is_approved, created_at, updated_at`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	var m Member
	err := r.db.GetContext(ctx, &m, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// LockTx loads a member inside a transaction and takes a row lock, so
// concurrent credit mutations against the same member serialize.
func (r *Repository) LockTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Member, error) {
	var m Member
	err := tx.GetContext(ctx, &m, `SELECT `+memberColumns+` FROM members WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ApplyCreditDeltaTx mutates the balance as an atomic increment at the
// storage layer rather than writing a computed value, so two interleaved
// transactions compose instead of clobbering each other.
func (r *Repository) ApplyCreditDeltaTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	var credit decimal.Decimal
	err := tx.GetContext(ctx, &credit, `
		UPDATE members
		SET credit = credit + $1, updated_at = now()
		WHERE id = $2
		RETURNING credit
	`, delta, id)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, ErrMemberNotFound
	}
	return credit, err
}

func (r *Repository) CreateTx(ctx context.Context, tx *sqlx.Tx, m *Member) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO members
			(id, name, phone, gender, address, credit, membership_package_id,
			 badge_id, start_date, end_date, payment_expiry_date, is_approved,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
	`, m.ID, m.Name, m.Phone, m.Gender, m.Address, m.Credit,
		m.MembershipPackageID, m.BadgeID, m.StartDate, m.EndDate,
		m.PaymentExpiryDate, m.IsApproved)
	return err
}

// ExtendMembershipTx pushes the membership end and payment expiry forward
// inside an open transaction.
func (r *Repository) ExtendMembershipTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, endDate, paymentExpiry time.Time) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE members
		SET end_date = $1, payment_expiry_date = $2, updated_at = now()
		WHERE id = $3
	`, endDate, paymentExpiry, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetPackageTx reassigns a member's package inside an open transaction.
func (r *Repository) SetPackageTx(ctx context.Context, tx *sqlx.Tx, id, packageID uuid.UUID) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE members
		SET membership_package_id = $1, updated_at = now()
		WHERE id = $2
	`, packageID, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]*Member, error) {
	members := []*Member{}
	err := r.db.SelectContext(ctx, &members, `
		SELECT `+memberColumns+`
		FROM members
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
	return members, err
}

func (r *Repository) Count(ctx context.Context, search string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM members
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%')
	`, search)
	return count, err
}

func (r *Repository) Update(ctx context.Context, m *Member) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE members
		SET name = $1, phone = $2, gender = $3, address = $4, badge_id = $5,
		    updated_at = now()
		WHERE id = $6
	`, m.Name, m.Phone, m.Gender, m.Address, m.BadgeID, m.ID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *Repository) UpdatePhoto(ctx context.Context, id uuid.UUID, photoURL, thumbURL string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE members
		SET photo_url = $1, thumb_url = $2, updated_at = now()
		WHERE id = $3
	`, photoURL, thumbURL, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMemberNotFound
	}
	return nil
}
