package membership

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Package is a pricing catalog entry for memberships.
type Package struct {
	ID                 uuid.UUID       `db:"id" json:"id"`
	Name               string          `db:"name" json:"name"`
	AdmissionAmount    decimal.Decimal `db:"admission_amount" json:"admission_amount"`
	MonthlyAmount      decimal.Decimal `db:"monthly_amount" json:"monthly_amount"`
	Months             int             `db:"months" json:"months"`
	DiscountQuarterly  decimal.Decimal `db:"discount_quarterly" json:"discount_quarterly"`
	DiscountHalfYearly decimal.Decimal `db:"discount_half_yearly" json:"discount_half_yearly"`
	DiscountYearly     decimal.Decimal `db:"discount_yearly" json:"discount_yearly"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// TierDiscount returns the fixed discount for a membership duration.
// Only the three standard tiers carry a discount; every other duration,
// including 1 month and 0 (temporary), maps to zero.
func (p *Package) TierDiscount(months int) decimal.Decimal {
	switch months {
	case 3:
		return p.DiscountQuarterly
	case 6:
		return p.DiscountHalfYearly
	case 12:
		return p.DiscountYearly
	default:
		return decimal.Zero
	}
}
