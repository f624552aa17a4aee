package store

import (
	"time"

	"github.com/mcclellann/advanceLedger/pkg/models"
)

// Storage defines the interface for the persistent event log. The log
// is append-only: events are inserted and read back in replay order
// (date ascending, arrival order within a date), never updated.
type Storage interface {
	CreateEvent(event *models.Event) error
	GetAllEvents() ([]models.Event, error)
	// GetEventsThrough returns events dated on or before cutoff, in
	// replay order.
	GetEventsThrough(cutoff time.Time) ([]models.Event, error)

	Close() error
}
