package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/mcclellann/advanceLedger/pkg/models"
	"github.com/mcclellann/advanceLedger/pkg/store"
	"github.com/shopspring/decimal"
)

func setupTestServer(t *testing.T) (*Server, *mux.Router) {
	dbFile := "test_api_events.db"
	os.Remove(dbFile)
	t.Cleanup(func() { os.Remove(dbFile) })

	s, err := store.NewSQLiteStore(dbFile)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	server := NewServer(s)
	return server, newRouter(server)
}

func postEvent(t *testing.T, router *mux.Router, kind, date string, amount float64) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]interface{}{
		"kind":   kind,
		"amount": amount,
		"date":   date,
	})
	req := httptest.NewRequest("POST", "/events", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestAPI_CreateAndListEvents(t *testing.T) {
	_, router := setupTestServer(t)

	rr := postEvent(t, router, "advance", "2021-01-01", 1000.0)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", rr.Code, rr.Body.String())
	}

	var created models.Event
	json.Unmarshal(rr.Body.Bytes(), &created)
	if created.Kind != models.EventKindAdvance {
		t.Errorf("Expected kind advance, got %s", created.Kind)
	}
	if created.Seq == 0 {
		t.Error("Expected stored event to carry a sequence number")
	}

	req := httptest.NewRequest("GET", "/events", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var events []models.Event
	json.Unmarshal(rr.Body.Bytes(), &events)
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].ID != created.ID {
		t.Errorf("Expected ID %s, got %s", created.ID, events[0].ID)
	}
}

func TestAPI_RejectsMalformedEvents(t *testing.T) {
	_, router := setupTestServer(t)

	if rr := postEvent(t, router, "refund", "2021-01-01", 100.0); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown kind, got %d", rr.Code)
	}
	if rr := postEvent(t, router, "advance", "01/01/2021", 100.0); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad date, got %d", rr.Code)
	}
	if rr := postEvent(t, router, "payment", "2021-01-01", -5.0); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for negative amount, got %d", rr.Code)
	}
}

func TestAPI_Statement(t *testing.T) {
	_, router := setupTestServer(t)

	if rr := postEvent(t, router, "advance", "2021-01-01", 1000.0); rr.Code != http.StatusCreated {
		t.Fatalf("Failed to create advance event: %d", rr.Code)
	}
	if rr := postEvent(t, router, "payment", "2021-01-15", 500.0); rr.Code != http.StatusCreated {
		t.Fatalf("Failed to create payment event: %d", rr.Code)
	}

	req := httptest.NewRequest("GET", "/statement?as_of=2021-01-15", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
	}

	var statement models.GlobalStatement
	json.Unmarshal(rr.Body.Bytes(), &statement)

	if len(statement.Advances) != 1 {
		t.Fatalf("Expected 1 advance in statement, got %d", len(statement.Advances))
	}
	if !statement.TotalPrincipalBalance.Equal(decimal.RequireFromString("504.90")) {
		t.Errorf("Expected total principal 504.90, got %s", statement.TotalPrincipalBalance)
	}
	if !statement.TotalInterestPaid.Equal(decimal.RequireFromString("4.90")) {
		t.Errorf("Expected total interest paid 4.90, got %s", statement.TotalInterestPaid)
	}
}

func TestAPI_StatementCutoffExcludesLaterEvents(t *testing.T) {
	_, router := setupTestServer(t)

	postEvent(t, router, "advance", "2021-01-01", 1000.0)
	postEvent(t, router, "advance", "2021-03-01", 9999.0)

	req := httptest.NewRequest("GET", "/statement?as_of=2021-01-10", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var statement models.GlobalStatement
	json.Unmarshal(rr.Body.Bytes(), &statement)

	if len(statement.Advances) != 1 {
		t.Errorf("Expected events after the cutoff to be excluded, got %d advances", len(statement.Advances))
	}
}
