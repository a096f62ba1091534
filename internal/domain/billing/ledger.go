package billing

import "github.com/shopspring/decimal"

// The balance rules are pure: they turn a monetary event into a signed delta
// against the member's credit. The coordinator applies the delta atomically
// at the storage layer. Sign convention, fixed across every call site:
// positive credit means the gym owes the member, negative credit means the
// member owes the gym (an advance).

// TransactionDelta is the credit delta for a net/paid pair.
// paid < net (underpayment) yields a negative delta: the advance grows.
// paid > net (overpayment) yields a positive delta: the member gains credit.
// The invariant is exact: credit_after - credit_before == paid - net.
func TransactionDelta(netAmount, paidAmount decimal.Decimal) decimal.Decimal {
	return paidAmount.Sub(netAmount)
}

// Shortfall is netAmount - paidAmount: positive when the member underpaid.
func Shortfall(netAmount, paidAmount decimal.Decimal) decimal.Decimal {
	return netAmount.Sub(paidAmount)
}

// ResolveRefund maps a refund amount and the current balance to the new
// balance. The branches collapse to the same arithmetic, but each carries a
// different meaning and each is pinned by tests, because the overloaded sign
// of "credit" makes this the most bug-prone spot in the ledger:
//
//	credit < 0, refund <= |credit|: the refund shrinks the advance owed.
//	credit < 0, refund >  |credit|: the excess becomes credit the gym owes.
//	credit >= 0:                    the refund adds to existing credit.
func ResolveRefund(credit, refundAmount decimal.Decimal) decimal.Decimal {
	if credit.IsNegative() {
		advance := credit.Neg()
		if refundAmount.LessThanOrEqual(advance) {
			return credit.Add(refundAmount)
		}
		return refundAmount.Sub(advance)
	}
	return credit.Add(refundAmount)
}
