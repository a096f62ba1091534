package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/membership"
)

// RegistrationRequest creates a member together with the initial payment.
// Amounts are derived server-side; only the selections are taken from input.
type RegistrationRequest struct {
	Name          string          `json:"name" validate:"required,min=2,max=100"`
	Phone         string          `json:"phone" validate:"required,min=7,max=20"`
	Gender        string          `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Address       string          `json:"address,omitempty" validate:"omitempty,max=255"`
	BadgeID       string          `json:"badge_id,omitempty" validate:"omitempty,max=50"`
	PackageID     string          `json:"package_id" validate:"required,uuid"`
	Months        int             `json:"months" validate:"months_tier"`
	ExtraDiscount decimal.Decimal `json:"extra_discount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	BillNumber    string          `json:"bill_number" validate:"required,max=50"`
	PaymentMode   string          `json:"payment_mode" validate:"required,payment_mode"`
	StartDate     string          `json:"start_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// RenewalRequest renews an existing member on their current package.
type RenewalRequest struct {
	Months        int             `json:"months" validate:"renew_months"`
	ExtraDiscount decimal.Decimal `json:"extra_discount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	BillNumber    string          `json:"bill_number" validate:"required,max=50"`
	PaymentMode   string          `json:"payment_mode" validate:"required,payment_mode"`
}

// LockerAssignRequest rents a physical locker to a member.
type LockerAssignRequest struct {
	LockerID     string          `json:"locker_id" validate:"required,uuid"`
	LockerNumber string          `json:"locker_number" validate:"required,min=1,max=20"`
	Discount     decimal.Decimal `json:"locker_discount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	BillNumber   string          `json:"bill_number" validate:"required,max=50"`
	PaymentMode  string          `json:"payment_mode" validate:"required,payment_mode"`
	StartDate    string          `json:"start_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// LockerExtendRequest extends an existing assignment, keeping the number.
type LockerExtendRequest struct {
	Discount    decimal.Decimal `json:"locker_discount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	BillNumber  string          `json:"bill_number" validate:"required,max=50"`
	PaymentMode string          `json:"payment_mode" validate:"required,payment_mode"`
}

// MiscTransactionRequest records a one-off charge against a member.
type MiscTransactionRequest struct {
	Remarks     string          `json:"remarks" validate:"required,max=255"`
	NetAmount   decimal.Decimal `json:"net_amount" validate:"required"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	BillNumber  string          `json:"bill_number" validate:"required,max=50"`
	PaymentMode string          `json:"payment_mode" validate:"required,payment_mode"`
}

// RefundRequest pays money back to a member.
type RefundRequest struct {
	RefundAmount   decimal.Decimal `json:"refund_amount" validate:"required"`
	PaymentMode    string          `json:"payment_mode" validate:"required,payment_mode"`
	PaymentVoucher string          `json:"payment_voucher,omitempty" validate:"omitempty,max=50"`
}

// ExtraCreditRequest grants credit outside a payment.
type ExtraCreditRequest struct {
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	Remarks    string          `json:"remarks" validate:"required,max=255"`
	BillNumber string          `json:"bill_number" validate:"required,max=50"`
}

// PackageChangeRequest moves a member onto a different package.
type PackageChangeRequest struct {
	PackageID string `json:"package_id" validate:"required,uuid"`
}

// RegistrationResult reports the committed registration.
type RegistrationResult struct {
	MemberID   uuid.UUID                    `json:"member_id"`
	Quote      membership.RegistrationQuote `json:"quote"`
	NewBalance decimal.Decimal              `json:"new_balance"`
	IsApproved bool                         `json:"is_approved"`
	Warnings   []string                     `json:"warnings,omitempty"`
}

// RenewalResult reports the committed renewal.
type RenewalResult struct {
	MemberID      uuid.UUID               `json:"member_id"`
	Quote         membership.RenewalQuote `json:"quote"`
	NewBalance    decimal.Decimal         `json:"new_balance"`
	PaymentExpiry string                  `json:"payment_expiry_date"`
	Warnings      []string                `json:"warnings,omitempty"`
}

// LockerResult reports a committed locker assignment or extension.
type LockerResult struct {
	AssignmentID uuid.UUID       `json:"assignment_id"`
	LockerNumber string          `json:"locker_number"`
	EndDate      string          `json:"end_date"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	NewBalance   decimal.Decimal `json:"new_balance"`
}

// BalanceResult reports a balance mutation with no further detail.
type BalanceResult struct {
	MemberID   uuid.UUID       `json:"member_id"`
	NewBalance decimal.Decimal `json:"new_balance"`
}
