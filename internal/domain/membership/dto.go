package membership

import "github.com/shopspring/decimal"

// SavePackageRequest creates or updates a catalog entry
type SavePackageRequest struct {
	Name               string          `json:"name" validate:"required,min=2,max=100"`
	AdmissionAmount    decimal.Decimal `json:"admission_amount" validate:"required"`
	MonthlyAmount      decimal.Decimal `json:"monthly_amount" validate:"required"`
	Months             int             `json:"months" validate:"gte=0,lte=12"`
	DiscountQuarterly  decimal.Decimal `json:"discount_quarterly"`
	DiscountHalfYearly decimal.Decimal `json:"discount_half_yearly"`
	DiscountYearly     decimal.Decimal `json:"discount_yearly"`
}

// QuoteRequest asks for a price preview without committing anything
type QuoteRequest struct {
	PackageID     string          `json:"package_id" validate:"required,uuid"`
	Months        int             `json:"months" validate:"months_tier"`
	ExtraDiscount decimal.Decimal `json:"extra_discount"`
	Renewal       bool            `json:"renewal"`
}
