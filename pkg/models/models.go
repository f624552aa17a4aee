package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventKind string

const (
	EventKindAdvance EventKind = "advance"
	EventKindPayment EventKind = "payment"
)

// Event is one immutable row of the event log. Events are ordered by
// Date ascending; events sharing a date keep their arrival order, which
// the store records in Seq.
type Event struct {
	ID     uuid.UUID       `json:"id"`
	Seq    int64           `json:"seq"` // Arrival order, assigned by the store
	Kind   EventKind       `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"` // Calendar date, midnight UTC
}

// AdvanceStatement is the reported state of a single advance as of a
// query date.
type AdvanceStatement struct {
	Identifier       int             `json:"identifier"`
	CreatedAt        string          `json:"created_at"` // ISO date (YYYY-MM-DD)
	InitialAmount    decimal.Decimal `json:"initial_amount"`
	PrincipalBalance decimal.Decimal `json:"principal_balance"`
	InterestPayable  decimal.Decimal `json:"interest_payable_balance"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
}

// GlobalStatement aggregates every advance plus the ledger-level
// figures. Monetary fields carry full decimal precision; rounding to
// two places happens only in the renderer.
type GlobalStatement struct {
	Advances              []AdvanceStatement `json:"advances"`
	TotalPrincipalBalance decimal.Decimal    `json:"total_principal_balance"`
	TotalInterestPayable  decimal.Decimal    `json:"total_interest_payable"`
	TotalInterestPaid     decimal.Decimal    `json:"total_interest_paid"`
	FutureCredit          decimal.Decimal    `json:"future_credit"` // Balance applicable to future advances
}
