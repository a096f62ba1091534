package application

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegistrationApplication is a self-service signup waiting for staff review.
// It holds the applicant's selections and claimed payment; pricing is never
// taken from here, it is recomputed from the catalog at approval time.
type RegistrationApplication struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Phone       string          `db:"phone" json:"phone"`
	Gender      sql.NullString  `db:"gender" json:"-"`
	Address     sql.NullString  `db:"address" json:"-"`
	PackageID   uuid.UUID       `db:"package_id" json:"package_id"`
	Months      int             `db:"months" json:"months"`
	PaidAmount  decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	PaymentMode string          `db:"payment_mode" json:"payment_mode"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// RenewalApplication is a self-service renewal request for an existing member.
type RenewalApplication struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	MemberID    uuid.UUID       `db:"member_id" json:"member_id"`
	Months      int             `db:"months" json:"months"`
	PaidAmount  decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	PaymentMode string          `db:"payment_mode" json:"payment_mode"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
