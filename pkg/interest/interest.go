package interest

import "github.com/shopspring/decimal"

// DefaultDailyRate is the standard per-day simple interest rate for
// cash advances.
var DefaultDailyRate = decimal.RequireFromString("0.00035")

// Model computes the interest owed on a principal for a number of
// elapsed days. Implementations must be stateless; one instance is
// shared by every advance the engine creates.
type Model interface {
	Accrue(principal decimal.Decimal, elapsedDays int) decimal.Decimal
}

// SimpleDaily is non-compounding daily interest:
// principal * rate * days.
type SimpleDaily struct {
	Rate decimal.Decimal // Per-day rate, e.g. 0.00035
}

// NewSimpleDaily creates a SimpleDaily model with the given per-day rate.
func NewSimpleDaily(rate decimal.Decimal) SimpleDaily {
	return SimpleDaily{Rate: rate}
}

func (m SimpleDaily) Accrue(principal decimal.Decimal, elapsedDays int) decimal.Decimal {
	return principal.Mul(m.Rate).Mul(decimal.NewFromInt(int64(elapsedDays)))
}
