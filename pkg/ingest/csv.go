package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mcclellann/advanceLedger/pkg/models"
	"github.com/mcclellann/advanceLedger/pkg/store"
	"github.com/shopspring/decimal"
)

// ParseRecord validates one "kind,date,amount" row and turns it into an
// event. Malformed rows (unknown kind, unparseable date, non-numeric or
// non-positive amount) are rejected here so the ledger core never sees
// them.
func ParseRecord(record []string) (models.Event, error) {
	if len(record) != 3 {
		return models.Event{}, fmt.Errorf("expected 3 fields (kind,date,amount), got %d", len(record))
	}

	kind := models.EventKind(record[0])
	if kind != models.EventKindAdvance && kind != models.EventKindPayment {
		return models.Event{}, fmt.Errorf("unknown event kind %q", record[0])
	}

	date, err := time.ParseInLocation(time.DateOnly, record[1], time.UTC)
	if err != nil {
		return models.Event{}, fmt.Errorf("invalid date %q: %w", record[1], err)
	}

	amount, err := decimal.NewFromString(record[2])
	if err != nil {
		return models.Event{}, fmt.Errorf("invalid amount %q: %w", record[2], err)
	}
	if !amount.IsPositive() {
		return models.Event{}, fmt.Errorf("amount %q must be positive", record[2])
	}

	return models.Event{
		ID:     uuid.New(),
		Kind:   kind,
		Amount: amount,
		Date:   date,
	}, nil
}

// Load reads CSV events from r and appends them to the store. The whole
// input is validated before anything is inserted, so a malformed row
// never leaves a partial load behind. Returns the number of events
// loaded.
func Load(r io.Reader, s store.Storage) (int, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read csv: %w", err)
	}

	events := make([]models.Event, 0, len(records))
	for i, record := range records {
		event, err := ParseRecord(record)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		events = append(events, event)
	}

	for i := range events {
		if err := s.CreateEvent(&events[i]); err != nil {
			return i, fmt.Errorf("failed to store event from row %d: %w", i+1, err)
		}
	}
	return len(events), nil
}

// LoadFile opens filename and loads its events into the store.
func LoadFile(filename string, s store.Storage) (int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	return Load(f, s)
}
