package billing

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMode is how money changed hands
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeCheque PaymentMode = "cheque"
	PaymentModeCard   PaymentMode = "card"
	PaymentModeOnline PaymentMode = "online"
)

// Payment is the initial registration payment. Ledger rows are append-only:
// created once, never mutated, never deleted.
type Payment struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	MemberID      uuid.UUID       `db:"member_id" json:"member_id"`
	PackageID     uuid.UUID       `db:"package_id" json:"package_id"`
	Months        int             `db:"months" json:"months"`
	NetAmount     decimal.Decimal `db:"net_amount" json:"net_amount"`
	PaidAmount    decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	TierDiscount  decimal.Decimal `db:"tier_discount" json:"tier_discount"`
	ExtraDiscount decimal.Decimal `db:"extra_discount" json:"extra_discount"`
	BillNumber    string          `db:"bill_number" json:"bill_number"`
	PaymentMode   PaymentMode     `db:"payment_mode" json:"payment_mode"`
	PaymentDate   time.Time       `db:"payment_date" json:"payment_date"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Renewal records a membership renewal payment.
type Renewal struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	MemberID      uuid.UUID       `db:"member_id" json:"member_id"`
	PackageID     uuid.UUID       `db:"package_id" json:"package_id"`
	Months        int             `db:"months" json:"months"`
	NetAmount     decimal.Decimal `db:"net_amount" json:"net_amount"`
	PaidAmount    decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	TierDiscount  decimal.Decimal `db:"tier_discount" json:"tier_discount"`
	ExtraDiscount decimal.Decimal `db:"extra_discount" json:"extra_discount"`
	BillNumber    string          `db:"bill_number" json:"bill_number"`
	PaymentMode   PaymentMode     `db:"payment_mode" json:"payment_mode"`
	PaymentDate   time.Time       `db:"payment_date" json:"payment_date"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// LockerPayment records a locker assignment or extension payment.
type LockerPayment struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	MemberID     uuid.UUID       `db:"member_id" json:"member_id"`
	AssignmentID uuid.UUID       `db:"assignment_id" json:"assignment_id"`
	NetAmount    decimal.Decimal `db:"net_amount" json:"net_amount"`
	PaidAmount   decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	Discount     decimal.Decimal `db:"discount" json:"discount"`
	BillNumber   string          `db:"bill_number" json:"bill_number"`
	PaymentMode  PaymentMode     `db:"payment_mode" json:"payment_mode"`
	PaymentDate  time.Time       `db:"payment_date" json:"payment_date"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// Transaction records a miscellaneous charge (supplements, day passes, etc.).
type Transaction struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	MemberID    uuid.UUID       `db:"member_id" json:"member_id"`
	Remarks     string          `db:"remarks" json:"remarks"`
	NetAmount   decimal.Decimal `db:"net_amount" json:"net_amount"`
	PaidAmount  decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	BillNumber  string          `db:"bill_number" json:"bill_number"`
	PaymentMode PaymentMode     `db:"payment_mode" json:"payment_mode"`
	PaymentDate time.Time       `db:"payment_date" json:"payment_date"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// Refund records money paid back to a member.
type Refund struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	MemberID       uuid.UUID       `db:"member_id" json:"member_id"`
	RefundAmount   decimal.Decimal `db:"refund_amount" json:"refund_amount"`
	PaymentMode    PaymentMode     `db:"payment_mode" json:"payment_mode"`
	PaymentVoucher sql.NullString  `db:"payment_voucher" json:"-"`
	PaymentDate    time.Time       `db:"payment_date" json:"payment_date"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// ExtraCredit is a staff-granted credit adjustment. Deleting one is a
// compensating correction that reverses its effect on the balance.
type ExtraCredit struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	MemberID   uuid.UUID       `db:"member_id" json:"member_id"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Remarks    string          `db:"remarks" json:"remarks"`
	BillNumber string          `db:"bill_number" json:"bill_number"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
