package ledger

import "errors"

var (
	// ErrNonPositiveAmount is returned when an advance or payment event
	// carries a zero or negative amount. Such events are input errors,
	// not no-ops.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrAccrualOutOfOrder is returned when interest accrual is asked to
	// run backwards. Replaying a date-ordered event log never hits this.
	ErrAccrualOutOfOrder = errors.New("accrual date precedes last accrual date")

	// ErrUnknownEventKind is returned for event kinds other than
	// "advance" and "payment".
	ErrUnknownEventKind = errors.New("unknown event kind")
)
