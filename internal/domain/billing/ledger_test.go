package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/billing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTransactionDelta(t *testing.T) {
	tests := []struct {
		name string
		net  string
		paid string
		want string
	}{
		{"exact payment", "5000", "5000", "0"},
		{"underpayment grows advance", "5000", "3000", "-2000"},
		{"overpayment becomes credit", "5000", "6500", "1500"},
		{"free of charge", "0", "0", "0"},
		{"payment against zero bill", "0", "500", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.TransactionDelta(dec(tt.net), dec(tt.paid))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("TransactionDelta(%s, %s) = %s, want %s", tt.net, tt.paid, got, tt.want)
			}
		})
	}
}

func TestTransactionDeltaInvariant(t *testing.T) {
	// credit_after - credit_before must equal paid - net for any balance.
	for _, credit := range []string{"-1200", "0", "750"} {
		for _, net := range []string{"0", "3000"} {
			for _, paid := range []string{"0", "1000", "4000"} {
				before := dec(credit)
				after := before.Add(billing.TransactionDelta(dec(net), dec(paid)))
				if !after.Sub(before).Equal(dec(paid).Sub(dec(net))) {
					t.Errorf("credit=%s net=%s paid=%s: delta mismatch", credit, net, paid)
				}
			}
		}
	}
}

func TestShortfall(t *testing.T) {
	if got := billing.Shortfall(dec("5000"), dec("3000")); !got.Equal(dec("2000")) {
		t.Errorf("Shortfall = %s, want 2000", got)
	}
	if got := billing.Shortfall(dec("5000"), dec("6000")); !got.Equal(dec("-1000")) {
		t.Errorf("Shortfall = %s, want -1000", got)
	}
}

func TestResolveRefundShrinksAdvance(t *testing.T) {
	// Member owes 500, gym hands back 300: advance shrinks to 200.
	got := billing.ResolveRefund(dec("-500"), dec("300"))
	if !got.Equal(dec("-200")) {
		t.Errorf("ResolveRefund(-500, 300) = %s, want -200", got)
	}
}

func TestResolveRefundCrossesZero(t *testing.T) {
	// Refund exceeds the advance: the excess becomes credit.
	got := billing.ResolveRefund(dec("-500"), dec("800"))
	if !got.Equal(dec("300")) {
		t.Errorf("ResolveRefund(-500, 800) = %s, want 300", got)
	}
}

func TestResolveRefundAddsToCredit(t *testing.T) {
	got := billing.ResolveRefund(dec("200"), dec("100"))
	if !got.Equal(dec("300")) {
		t.Errorf("ResolveRefund(200, 100) = %s, want 300", got)
	}

	got = billing.ResolveRefund(dec("0"), dec("450"))
	if !got.Equal(dec("450")) {
		t.Errorf("ResolveRefund(0, 450) = %s, want 450", got)
	}
}

func TestResolveRefundExactAdvance(t *testing.T) {
	got := billing.ResolveRefund(dec("-500"), dec("500"))
	if !got.IsZero() {
		t.Errorf("ResolveRefund(-500, 500) = %s, want 0", got)
	}
}
