package billing

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Repository writes append-only ledger rows. Every insert happens inside the
// coordinator's transaction so a row never lands without its balance delta.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func (r *Repository) InsertPaymentTx(ctx context.Context, tx *sqlx.Tx, p *Payment) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO payments
			(id, member_id, package_id, months, net_amount, paid_amount,
			 tier_discount, extra_discount, bill_number, payment_mode,
			 payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
	`, p.ID, p.MemberID, p.PackageID, p.Months, p.NetAmount, p.PaidAmount,
		p.TierDiscount, p.ExtraDiscount, p.BillNumber, p.PaymentMode, p.PaymentDate)
	return err
}

func (r *Repository) InsertRenewalTx(ctx context.Context, tx *sqlx.Tx, ren *Renewal) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO membership_renewals
			(id, member_id, package_id, months, net_amount, paid_amount,
			 tier_discount, extra_discount, bill_number, payment_mode,
			 payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
	`, ren.ID, ren.MemberID, ren.PackageID, ren.Months, ren.NetAmount, ren.PaidAmount,
		ren.TierDiscount, ren.ExtraDiscount, ren.BillNumber, ren.PaymentMode, ren.PaymentDate)
	return err
}

func (r *Repository) InsertLockerPaymentTx(ctx context.Context, tx *sqlx.Tx, lp *LockerPayment) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO locker_payments
			(id, member_id, assignment_id, net_amount, paid_amount, discount,
			 bill_number, payment_mode, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
	`, lp.ID, lp.MemberID, lp.AssignmentID, lp.NetAmount, lp.PaidAmount,
		lp.Discount, lp.BillNumber, lp.PaymentMode, lp.PaymentDate)
	return err
}

func (r *Repository) InsertTransactionTx(ctx context.Context, tx *sqlx.Tx, t *Transaction) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions
			(id, member_id, remarks, net_amount, paid_amount, bill_number,
			 payment_mode, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	`, t.ID, t.MemberID, t.Remarks, t.NetAmount, t.PaidAmount, t.BillNumber,
		t.PaymentMode, t.PaymentDate)
	return err
}

func (r *Repository) InsertRefundTx(ctx context.Context, tx *sqlx.Tx, ref *Refund) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO refunds
			(id, member_id, refund_amount, payment_mode, payment_voucher,
			 payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
	`, ref.ID, ref.MemberID, ref.RefundAmount, ref.PaymentMode,
		ref.PaymentVoucher, ref.PaymentDate)
	return err
}

func (r *Repository) InsertExtraCreditTx(ctx context.Context, tx *sqlx.Tx, ec *ExtraCredit) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO extra_credits
			(id, member_id, amount, remarks, bill_number, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, ec.ID, ec.MemberID, ec.Amount, ec.Remarks, ec.BillNumber)
	return err
}

// GetExtraCreditTx loads a grant with a row lock before revocation.
func (r *Repository) GetExtraCreditTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*ExtraCredit, error) {
	var ec ExtraCredit
	err := tx.GetContext(ctx, &ec, `
		SELECT id, member_id, amount, remarks, bill_number, created_at
		FROM extra_credits WHERE id = $1 FOR UPDATE
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ec, nil
}

func (r *Repository) DeleteExtraCreditTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM extra_credits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// StatementEntry is one row of a member's unified financial history.
type StatementEntry struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Kind        string          `db:"kind" json:"kind"`
	NetAmount   decimal.Decimal `db:"net_amount" json:"net_amount"`
	PaidAmount  decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	BillNumber  string          `db:"bill_number" json:"bill_number"`
	PaymentDate time.Time       `db:"payment_date" json:"payment_date"`
}

// Statement lists every ledger entry for a member, newest first. Refunds and
// extra credits appear with the paid side carrying the movement so the
// running total can be reconstructed from the listing.
func (r *Repository) Statement(ctx context.Context, memberID uuid.UUID) ([]StatementEntry, error) {
	entries := []StatementEntry{}
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, 'payment' AS kind, net_amount, paid_amount, bill_number, payment_date
		FROM payments WHERE member_id = $1
		UNION ALL
		SELECT id, 'renewal', net_amount, paid_amount, bill_number, payment_date
		FROM membership_renewals WHERE member_id = $1
		UNION ALL
		SELECT id, 'locker', net_amount, paid_amount, bill_number, payment_date
		FROM locker_payments WHERE member_id = $1
		UNION ALL
		SELECT id, 'transaction', net_amount, paid_amount, bill_number, payment_date
		FROM transactions WHERE member_id = $1
		UNION ALL
		SELECT id, 'refund', 0, refund_amount, COALESCE(payment_voucher, ''), payment_date
		FROM refunds WHERE member_id = $1
		UNION ALL
		SELECT id, 'extra_credit', 0, amount, bill_number, created_at
		FROM extra_credits WHERE member_id = $1
		ORDER BY payment_date DESC
	`, memberID)
	return entries, err
}
