package membership_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/membership"
)

func testPackage() *membership.Package {
	return &membership.Package{
		Name:               "Regular",
		AdmissionAmount:    dec("1000"),
		MonthlyAmount:      dec("2000"),
		DiscountQuarterly:  dec("300"),
		DiscountHalfYearly: dec("900"),
		DiscountYearly:     dec("2400"),
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeRegistrationTierSelection(t *testing.T) {
	pkg := testPackage()

	tests := []struct {
		name     string
		months   int
		wantTier string
		wantNet  string
	}{
		{"single month no tier", 1, "0", "3000"},
		{"two months no tier", 2, "0", "5000"},
		{"quarterly", 3, "300", "6700"},
		{"half yearly", 6, "900", "12100"},
		{"yearly", 12, "2400", "22600"},
		{"temporary membership", 0, "0", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := membership.ComputeRegistration(pkg, tt.months, decimal.Zero)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !quote.TierDiscount.Equal(dec(tt.wantTier)) {
				t.Errorf("tier discount = %s, want %s", quote.TierDiscount, tt.wantTier)
			}
			if !quote.Net.Equal(dec(tt.wantNet)) {
				t.Errorf("net = %s, want %s", quote.Net, tt.wantNet)
			}
		})
	}
}

func TestComputeRegistrationNegativeDuration(t *testing.T) {
	pkg := testPackage()
	if _, err := membership.ComputeRegistration(pkg, -1, decimal.Zero); !errors.Is(err, membership.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestComputeRegistrationExtraDiscountClamp(t *testing.T) {
	pkg := testPackage()

	// Gross for 3 months: 1000 + 3*2000 = 7000, tier 300, after tier 6700.
	quote, err := membership.ComputeRegistration(pkg, 3, dec("10000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.Net.IsZero() {
		t.Errorf("net = %s, want 0 when extra discount exceeds the bill", quote.Net)
	}

	quote, err = membership.ComputeRegistration(pkg, 3, dec("-50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.Net.Equal(dec("6700")) {
		t.Errorf("net = %s, want 6700 with negative extra discount ignored", quote.Net)
	}
}

func TestComputeRegistrationNetWithinBounds(t *testing.T) {
	pkg := testPackage()

	for _, months := range []int{0, 1, 3, 6, 12} {
		for _, extra := range []string{"0", "100", "5000", "100000"} {
			quote, err := membership.ComputeRegistration(pkg, months, dec(extra))
			if err != nil {
				t.Fatalf("months=%d extra=%s: %v", months, extra, err)
			}
			if quote.Net.IsNegative() {
				t.Errorf("months=%d extra=%s: net %s below zero", months, extra, quote.Net)
			}
			if quote.Net.GreaterThan(quote.Gross) {
				t.Errorf("months=%d extra=%s: net %s above gross %s", months, extra, quote.Net, quote.Gross)
			}
		}
	}
}

func TestComputeRenewalExcludesAdmission(t *testing.T) {
	pkg := testPackage()

	reg, err := membership.ComputeRegistration(pkg, 6, decimal.Zero)
	if err != nil {
		t.Fatalf("registration quote: %v", err)
	}
	ren, err := membership.ComputeRenewal(pkg, 6, decimal.Zero)
	if err != nil {
		t.Fatalf("renewal quote: %v", err)
	}

	if !reg.Net.Sub(ren.Net).Equal(pkg.AdmissionAmount) {
		t.Errorf("registration net %s minus renewal net %s should differ by admission %s",
			reg.Net, ren.Net, pkg.AdmissionAmount)
	}
}

func TestComputeRenewalRejectsTemporary(t *testing.T) {
	pkg := testPackage()
	if _, err := membership.ComputeRenewal(pkg, 0, decimal.Zero); !errors.Is(err, membership.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration for 0-month renewal, got %v", err)
	}
}

func TestQuoteIsDeterministic(t *testing.T) {
	pkg := testPackage()

	a, err := membership.ComputeRegistration(pkg, 12, dec("500"))
	if err != nil {
		t.Fatalf("first quote: %v", err)
	}
	b, err := membership.ComputeRegistration(pkg, 12, dec("500"))
	if err != nil {
		t.Fatalf("second quote: %v", err)
	}
	if !a.Net.Equal(b.Net) || !a.TierDiscount.Equal(b.TierDiscount) || !a.Gross.Equal(b.Gross) {
		t.Errorf("quotes differ: %+v vs %+v", a, b)
	}
}
