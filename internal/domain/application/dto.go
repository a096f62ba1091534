package application

import "github.com/shopspring/decimal"

// SubmitRegistrationRequest is the public signup form. The claimed paid
// amount is stored for the reviewer; the bill is priced at approval.
type SubmitRegistrationRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Phone       string          `json:"phone" validate:"required,min=7,max=20"`
	Gender      string          `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Address     string          `json:"address,omitempty" validate:"omitempty,max=255"`
	PackageID   string          `json:"package_id" validate:"required,uuid"`
	Months      int             `json:"months" validate:"months_tier"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	PaymentMode string          `json:"payment_mode" validate:"required,payment_mode"`
}

// SubmitRenewalRequest is the public renewal form.
type SubmitRenewalRequest struct {
	MemberID    string          `json:"member_id" validate:"required,uuid"`
	Months      int             `json:"months" validate:"renew_months"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	PaymentMode string          `json:"payment_mode" validate:"required,payment_mode"`
}

// ApproveRequest carries the reviewer's adjustments applied at approval.
type ApproveRequest struct {
	ExtraDiscount decimal.Decimal `json:"extra_discount"`
	BillNumber    string          `json:"bill_number" validate:"required,max=50"`
	BadgeID       string          `json:"badge_id,omitempty" validate:"omitempty,max=50"`
}
