package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sketchwire/sketchwire/internal/room"
	"github.com/sketchwire/sketchwire/internal/store"
	"github.com/sketchwire/sketchwire/internal/ws"
)

func setupTestAPI() (*API, *store.Store) {
	st := store.New(store.Config{GraceDelay: time.Minute, SweepInterval: time.Hour})
	hub := ws.NewHub()
	return New(hub, st), st
}

func TestHealthHandler(t *testing.T) {
	api, _ := setupTestAPI()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	api.HealthHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response["status"] != "ok" {
		t.Errorf("Expected status 'ok', got '%v'", response["status"])
	}
}

func TestStatsHandler(t *testing.T) {
	api, st := setupTestAPI()

	r := st.GetOrCreate("r1")
	r.AddMember(room.Participant{ConnectionID: "c1"})
	st.GetOrCreate("r2")

	req := httptest.NewRequest("GET", "/api/stats", nil)
	w := httptest.NewRecorder()

	api.StatsHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response["active_rooms"] != float64(2) {
		t.Errorf("Expected 2 active rooms, got %v", response["active_rooms"])
	}
	if _, ok := response["uptime_seconds"]; !ok {
		t.Error("Stats should report uptime")
	}
}

func TestStatsHandlerRejectsPost(t *testing.T) {
	api, _ := setupTestAPI()

	req := httptest.NewRequest("POST", "/api/stats", nil)
	w := httptest.NewRecorder()

	api.StatsHandler(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}
