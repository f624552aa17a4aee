package ledger

import (
	"fmt"
	"time"

	"github.com/mcclellann/advanceLedger/pkg/interest"
	"github.com/mcclellann/advanceLedger/pkg/models"
	"github.com/shopspring/decimal"
)

// Engine owns the ordered set of advances and the credit waiting for a
// future advance. It is built once per computation, fed a date-ordered
// event stream, and queried for a statement; it is not persisted — the
// event log is the source of truth and the engine is reconstructed by
// replay.
type Engine struct {
	model        interest.Model
	advances     []*Advance
	futureCredit decimal.Decimal
}

// NewEngine creates an empty engine. Every advance it creates shares the
// given interest model.
func NewEngine(model interest.Model) *Engine {
	return &Engine{
		model:        model,
		futureCredit: decimal.Zero,
	}
}

// ApplyAdvance opens a new advance with the next sequential identifier.
// Any credit held for a future advance is immediately allocated to it
// through the normal payment path; the credit is zeroed first so the
// allocation cannot double-count it.
func (e *Engine) ApplyAdvance(amount decimal.Decimal, date time.Time) error {
	if !amount.IsPositive() {
		return fmt.Errorf("advance of %s on %s: %w", amount, date.Format(time.DateOnly), ErrNonPositiveAmount)
	}
	e.advances = append(e.advances, newAdvance(e.model, len(e.advances)+1, amount, date))

	if e.futureCredit.IsPositive() {
		credit := e.futureCredit
		e.futureCredit = decimal.Zero
		return e.ApplyPayment(credit, date)
	}
	return nil
}

// ApplyPayment allocates a payment across all advances in creation
// order, in two phases: accrued interest first, then principal. Whatever
// no advance can absorb is held as credit for the next advance created.
func (e *Engine) ApplyPayment(amount decimal.Decimal, date time.Time) error {
	if !amount.IsPositive() {
		return fmt.Errorf("payment of %s on %s: %w", amount, date.Format(time.DateOnly), ErrNonPositiveAmount)
	}

	remaining := amount
	for _, adv := range e.advances {
		var err error
		remaining, err = adv.PayInterest(remaining, date)
		if err != nil {
			return err
		}
		if remaining.IsZero() {
			break
		}
	}
	if remaining.IsPositive() {
		for _, adv := range e.advances {
			remaining = adv.PayPrincipal(remaining)
			if remaining.IsZero() {
				break
			}
		}
	}
	if remaining.IsPositive() {
		e.futureCredit = e.futureCredit.Add(remaining)
	}
	return nil
}

// Apply dispatches one event to the matching handler.
func (e *Engine) Apply(event models.Event) error {
	switch event.Kind {
	case models.EventKindAdvance:
		return e.ApplyAdvance(event.Amount, event.Date)
	case models.EventKindPayment:
		return e.ApplyPayment(event.Amount, event.Date)
	default:
		return fmt.Errorf("event %s: %w: %q", event.ID, ErrUnknownEventKind, event.Kind)
	}
}

// Replay folds a date-ordered event stream into the engine, stopping at
// the first event dated strictly after cutoff. Events sharing a date
// must already be in arrival order.
func (e *Engine) Replay(events []models.Event, cutoff time.Time) error {
	for _, event := range events {
		if event.Date.After(cutoff) {
			break
		}
		if err := e.Apply(event); err != nil {
			return err
		}
	}
	return nil
}

// Statement reports every advance as of asOf plus the four aggregate
// figures. Per-advance accrual runs through the end of the query day;
// repeated calls with the same date return identical statements.
func (e *Engine) Statement(asOf time.Time) (models.GlobalStatement, error) {
	statement := models.GlobalStatement{
		Advances:              make([]models.AdvanceStatement, 0, len(e.advances)),
		TotalPrincipalBalance: decimal.Zero,
		TotalInterestPayable:  decimal.Zero,
		TotalInterestPaid:     decimal.Zero,
		FutureCredit:          e.futureCredit,
	}
	for _, adv := range e.advances {
		line, err := adv.StatementAsOf(asOf)
		if err != nil {
			return models.GlobalStatement{}, err
		}
		statement.Advances = append(statement.Advances, line)
		statement.TotalPrincipalBalance = statement.TotalPrincipalBalance.Add(line.PrincipalBalance)
		statement.TotalInterestPayable = statement.TotalInterestPayable.Add(line.InterestPayable)
		statement.TotalInterestPaid = statement.TotalInterestPaid.Add(line.InterestPaid)
	}
	return statement, nil
}

// ComputeStatement is the single entry point for callers holding a raw
// event log: it replays events dated on or before asOf into a fresh
// engine and returns the statement. Partial statements are never
// returned; any replay error abandons the computation.
func ComputeStatement(model interest.Model, events []models.Event, asOf time.Time) (models.GlobalStatement, error) {
	engine := NewEngine(model)
	if err := engine.Replay(events, asOf); err != nil {
		return models.GlobalStatement{}, err
	}
	return engine.Statement(asOf)
}
