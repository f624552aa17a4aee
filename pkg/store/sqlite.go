package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mcclellann/advanceLedger/pkg/models"
	"github.com/shopspring/decimal"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore manages the database connection and operations for the
// SQLite event log.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore and initializes the database.
func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	// Manually enable WAL mode
	_, err = db.Exec("PRAGMA journal_mode = WAL;")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("could not initialize schema: %w", err)
	}
	log.Println("Database connection established and schema initialized.")
	return s, nil
}

// initSchema creates the events table if it doesn't already exist.
// We use TEXT for the amount so no decimal precision is lost, and TEXT
// (YYYY-MM-DD) for the date so lexicographic order is date order. The
// autoincrement seq records arrival order, which is the only tie-break
// for events sharing a date.
func (s *SQLiteStore) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL CHECK (kind IN ('advance', 'payment')),
		amount TEXT NOT NULL,
		event_date TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	if err != nil {
		return err
	}
	return nil
}

// CreateEvent inserts a new event into the log and fills in the
// sequence number the database assigned to it.
func (s *SQLiteStore) CreateEvent(event *models.Event) error {
	result, err := s.db.Exec(
		`INSERT INTO events (id, kind, amount, event_date) VALUES (?, ?, ?, ?)`,
		event.ID.String(), string(event.Kind), event.Amount.String(), event.Date.Format(time.DateOnly),
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	seq, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read event sequence: %w", err)
	}
	event.Seq = seq
	return nil
}

// GetAllEvents retrieves the whole log in replay order.
func (s *SQLiteStore) GetAllEvents() ([]models.Event, error) {
	rows, err := s.db.Query(`SELECT seq, id, kind, amount, event_date FROM events ORDER BY event_date ASC, seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all events: %w", err)
	}
	defer rows.Close()

	return s.scanEvents(rows)
}

// GetEventsThrough retrieves events dated on or before cutoff, in
// replay order.
func (s *SQLiteStore) GetEventsThrough(cutoff time.Time) ([]models.Event, error) {
	rows, err := s.db.Query(
		`SELECT seq, id, kind, amount, event_date FROM events WHERE event_date <= ? ORDER BY event_date ASC, seq ASC`,
		cutoff.Format(time.DateOnly),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get events through %s: %w", cutoff.Format(time.DateOnly), err)
	}
	defer rows.Close()

	return s.scanEvents(rows)
}

func (s *SQLiteStore) scanEvents(rows *sql.Rows) ([]models.Event, error) {
	var events []models.Event
	for rows.Next() {
		var event models.Event
		var idStr, kind, amount, date string
		if err := rows.Scan(&event.Seq, &idStr, &kind, &amount, &date); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event id %q: %w", idStr, err)
		}
		event.ID = id
		event.Kind = models.EventKind(kind)
		if event.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse event %s amount: %w", idStr, err)
		}
		if event.Date, err = time.ParseInLocation(time.DateOnly, date, time.UTC); err != nil {
			return nil, fmt.Errorf("failed to parse event %s date: %w", idStr, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}
	return events, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
