package membership

import (
	"github.com/shopspring/decimal"
)

// RegistrationQuote is the authoritative price breakdown for a new membership.
type RegistrationQuote struct {
	Admission    decimal.Decimal `json:"admission"`
	TotalMonthly decimal.Decimal `json:"total_monthly"`
	Gross        decimal.Decimal `json:"gross_amount"`
	TierDiscount decimal.Decimal `json:"tier_discount"`
	Net          decimal.Decimal `json:"net_amount"`
}

// RenewalQuote is the authoritative price breakdown for a renewal.
type RenewalQuote struct {
	TotalMonthly decimal.Decimal `json:"total_monthly"`
	TierDiscount decimal.Decimal `json:"tier_discount"`
	Net          decimal.Decimal `json:"net_amount"`
}

// ComputeRegistration prices a new membership. Amounts submitted by the
// applicant are never consulted; the package catalog row is the only input.
// months 0 is a temporary membership: no monthly charge, no tier discount.
func ComputeRegistration(pkg *Package, months int, extraDiscount decimal.Decimal) (RegistrationQuote, error) {
	if err := checkPackage(pkg); err != nil {
		return RegistrationQuote{}, err
	}
	if months < 0 {
		return RegistrationQuote{}, ErrInvalidDuration
	}

	totalMonthly := pkg.MonthlyAmount.Mul(decimal.NewFromInt(int64(months)))
	gross := pkg.AdmissionAmount.Add(totalMonthly)
	tier := pkg.TierDiscount(months)
	net := applyDiscounts(gross, tier, extraDiscount)

	return RegistrationQuote{
		Admission:    pkg.AdmissionAmount,
		TotalMonthly: totalMonthly,
		Gross:        gross,
		TierDiscount: tier,
		Net:          net,
	}, nil
}

// ComputeRenewal prices a renewal: no admission fee, same tier rules.
func ComputeRenewal(pkg *Package, months int, extraDiscount decimal.Decimal) (RenewalQuote, error) {
	if err := checkPackage(pkg); err != nil {
		return RenewalQuote{}, err
	}
	if months <= 0 {
		return RenewalQuote{}, ErrInvalidDuration
	}

	totalMonthly := pkg.MonthlyAmount.Mul(decimal.NewFromInt(int64(months)))
	tier := pkg.TierDiscount(months)
	net := applyDiscounts(totalMonthly, tier, extraDiscount)

	return RenewalQuote{
		TotalMonthly: totalMonthly,
		TierDiscount: tier,
		Net:          net,
	}, nil
}

// applyDiscounts subtracts the tier discount, then the staff-granted extra
// discount clamped to [0, gross-tier]. The net amount never goes negative.
func applyDiscounts(gross, tier, extra decimal.Decimal) decimal.Decimal {
	afterTier := gross.Sub(tier)
	if afterTier.IsNegative() {
		afterTier = decimal.Zero
	}

	if extra.IsNegative() {
		extra = decimal.Zero
	}
	if extra.GreaterThan(afterTier) {
		extra = afterTier
	}

	return afterTier.Sub(extra)
}

func checkPackage(pkg *Package) error {
	if pkg == nil {
		return ErrPackageNotFound
	}
	if pkg.AdmissionAmount.IsNegative() || pkg.MonthlyAmount.IsNegative() {
		return ErrInvalidPackage
	}
	return nil
}
