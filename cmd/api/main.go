package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/mcclellann/advanceLedger/pkg/interest"
	"github.com/mcclellann/advanceLedger/pkg/ledger"
	"github.com/mcclellann/advanceLedger/pkg/models"
	"github.com/mcclellann/advanceLedger/pkg/store"
	"github.com/shopspring/decimal"
)

// Server exposes the event log and statement computation over HTTP.
// Statements are computed by full replay on every request; the stored
// event log is the only durable state.
type Server struct {
	storage store.Storage
	model   interest.Model
}

func NewServer(s store.Storage) *Server {
	return &Server{
		storage: s,
		model:   interest.NewSimpleDaily(interest.DefaultDailyRate),
	}
}

func (s *Server) createEventHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind   string          `json:"kind"`
		Amount decimal.Decimal `json:"amount"`
		Date   string          `json:"date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind := models.EventKind(req.Kind)
	if kind != models.EventKindAdvance && kind != models.EventKindPayment {
		http.Error(w, fmt.Sprintf("Unknown event kind %q", req.Kind), http.StatusBadRequest)
		return
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		http.Error(w, "Amount must be positive", http.StatusBadRequest)
		return
	}
	date, err := time.ParseInLocation(time.DateOnly, req.Date, time.UTC)
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	event := models.Event{
		ID:     uuid.New(),
		Kind:   kind,
		Amount: req.Amount,
		Date:   date,
	}
	if err := s.storage.CreateEvent(&event); err != nil {
		log.Printf("Error creating event: %v\n", err)
		http.Error(w, fmt.Sprintf("Failed to create event: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(event)
}

func (s *Server) listEventsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := s.storage.GetAllEvents()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

func (s *Server) statementHandler(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		var err error
		asOf, err = time.ParseInLocation(time.DateOnly, raw, time.UTC)
		if err != nil {
			http.Error(w, "Invalid as_of date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	events, err := s.storage.GetEventsThrough(asOf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	statement, err := ledger.ComputeStatement(s.model, events, asOf)
	if err != nil {
		if errors.Is(err, ledger.ErrNonPositiveAmount) || errors.Is(err, ledger.ErrUnknownEventKind) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statement)
}

func newRouter(server *Server) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/events", server.listEventsHandler).Methods("GET")
	router.HandleFunc("/events", server.createEventHandler).Methods("POST")
	router.HandleFunc("/statement", server.statementHandler).Methods("GET")
	return router
}

func main() {
	dbPath := flag.String("db", "db.sqlite3", "Path to the sqlite3 database file.")
	addr := flag.String("addr", ":8080", "Listen address.")
	flag.Parse()

	sqliteStore, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize SQLite store: %v", err)
	}
	defer sqliteStore.Close()

	server := NewServer(sqliteStore)

	log.Printf("Server starting on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, newRouter(server)))
}
