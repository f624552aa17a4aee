package ledger

import (
	"fmt"
	"time"

	"github.com/mcclellann/advanceLedger/pkg/interest"
	"github.com/mcclellann/advanceLedger/pkg/models"
	"github.com/shopspring/decimal"
)

// Advance tracks one disbursed cash advance: its remaining principal,
// the interest accrued but not yet paid, and the interest paid to date.
// UpdatedAt is the date through which interest has last been accrued;
// it never moves backwards.
type Advance struct {
	Identifier       int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	InitialAmount    decimal.Decimal
	PrincipalBalance decimal.Decimal
	InterestPayable  decimal.Decimal
	InterestPaid     decimal.Decimal

	model interest.Model
}

func newAdvance(model interest.Model, identifier int, amount decimal.Decimal, createdAt time.Time) *Advance {
	return &Advance{
		Identifier:       identifier,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
		InitialAmount:    amount,
		PrincipalBalance: amount,
		InterestPayable:  decimal.Zero,
		InterestPaid:     decimal.Zero,
		model:            model,
	}
}

// elapsedDays returns the whole days between two midnight-UTC dates.
func elapsedDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// AccrueThrough adds the interest owed on the current principal for the
// days between UpdatedAt and date, then moves UpdatedAt forward. This is
// the only way InterestPayable grows. Calling it twice with the same
// date adds zero the second time; a date before UpdatedAt is a caller
// error and fails loudly.
func (a *Advance) AccrueThrough(date time.Time) error {
	days := elapsedDays(a.UpdatedAt, date)
	if days < 0 {
		return fmt.Errorf("advance %d: accrue through %s: %w (last accrued %s)",
			a.Identifier, date.Format(time.DateOnly), ErrAccrualOutOfOrder, a.UpdatedAt.Format(time.DateOnly))
	}
	a.InterestPayable = a.InterestPayable.Add(a.model.Accrue(a.PrincipalBalance, days))
	a.UpdatedAt = date
	return nil
}

// PayInterest accrues interest through asOf, then applies amount against
// the interest payable balance. It returns whatever portion of amount
// was not absorbed.
func (a *Advance) PayInterest(amount decimal.Decimal, asOf time.Time) (decimal.Decimal, error) {
	if err := a.AccrueThrough(asOf); err != nil {
		return amount, err
	}
	if amount.LessThanOrEqual(a.InterestPayable) {
		a.InterestPayable = a.InterestPayable.Sub(amount)
		a.InterestPaid = a.InterestPaid.Add(amount)
		return decimal.Zero, nil
	}
	remainder := amount.Sub(a.InterestPayable)
	a.InterestPaid = a.InterestPaid.Add(a.InterestPayable)
	a.InterestPayable = decimal.Zero
	return remainder, nil
}

// PayPrincipal applies amount against the principal balance and returns
// the unabsorbed portion. Pure subtraction: it does not accrue interest.
func (a *Advance) PayPrincipal(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(a.PrincipalBalance) {
		a.PrincipalBalance = a.PrincipalBalance.Sub(amount)
		return decimal.Zero
	}
	remainder := amount.Sub(a.PrincipalBalance)
	a.PrincipalBalance = decimal.Zero
	return remainder
}

// StatementAsOf accrues interest through the end of the query day
// (date + 1, the reporting convention) and reports the advance's
// balances. The accrual moves UpdatedAt, but repeated calls with the
// same date are idempotent since the second elapsed period is zero days.
func (a *Advance) StatementAsOf(date time.Time) (models.AdvanceStatement, error) {
	if err := a.AccrueThrough(date.AddDate(0, 0, 1)); err != nil {
		return models.AdvanceStatement{}, err
	}
	return models.AdvanceStatement{
		Identifier:       a.Identifier,
		CreatedAt:        a.CreatedAt.Format(time.DateOnly),
		InitialAmount:    a.InitialAmount,
		PrincipalBalance: a.PrincipalBalance,
		InterestPayable:  a.InterestPayable,
		InterestPaid:     a.InterestPaid,
	}, nil
}
