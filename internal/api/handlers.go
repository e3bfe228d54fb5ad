package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/sketchwire/sketchwire/internal/store"
	"github.com/sketchwire/sketchwire/internal/ws"
)

type API struct {
	hub     *ws.Hub
	store   *store.Store
	started time.Time
}

func New(hub *ws.Hub, st *store.Store) *API {
	return &API{
		hub:     hub,
		store:   st,
		started: time.Now(),
	}
}

func jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"active_rooms":   a.store.Count(),
		"active_clients": a.hub.ClientCount(),
		"uptime_seconds": int(time.Since(a.started).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
