package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// PaymentStatusFor derives the payment status from the settled and owed
// amounts. Status is a pure function of this pair; it must never be stored
// or updated independently of amountPaid.
func PaymentStatusFor(amountPaid, netAmount decimal.Decimal) domain.PaymentStatus {
	switch {
	case amountPaid.LessThanOrEqual(decimal.Zero):
		return domain.Unpaid
	case amountPaid.GreaterThanOrEqual(netAmount):
		return domain.Paid
	default:
		return domain.Partial
	}
}

// NetAmount computes quantity*rate less discount. A zero gross is recomputed
// from quantity and rate so callers may omit it.
func NetAmount(quantity, rate, gross, discount decimal.Decimal) (grossOut, netOut decimal.Decimal) {
	if gross.IsZero() {
		gross = quantity.Mul(rate)
	}
	return gross, gross.Sub(discount)
}

// PercentChange formats a month-over-month change as the dashboard shows it.
// A zero previous value cannot be divided: any growth from zero reads "+100%",
// and flat zero reads "0%".
func PercentChange(current, previous decimal.Decimal) string {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return "+100%"
		}
		return "0%"
	}
	change := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	formatted := change.StringFixed(1)
	if change.GreaterThanOrEqual(decimal.Zero) {
		return "+" + formatted + "%"
	}
	return formatted + "%"
}

// ProgressPercent computes spend against budget, capped at 100. A zero or
// negative budget reports zero progress rather than dividing by it.
func ProgressPercent(spent, budget decimal.Decimal) int {
	if !budget.IsPositive() {
		return 0
	}
	pct := spent.Div(budget).Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	if pct.IsNegative() {
		return 0
	}
	return int(pct.Round(0).IntPart())
}
