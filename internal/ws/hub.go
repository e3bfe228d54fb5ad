package ws

import (
	"log"
	"sync"
)

// Tracks live connections grouped by room and routes events to them.
// Delivery works off a membership snapshot taken under the read lock;
// a connection detached mid-broadcast may still get one stray message,
// which clients tolerate.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*Client // roomID -> connectionID -> client
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[string]*Client),
	}
}

// Registers the connection for delivery in the room
func (h *Hub) Attach(roomID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*Client)
	}
	h.rooms[roomID][c.id] = c
}

func (h *Hub) Detach(roomID, connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.rooms[roomID]; ok {
		delete(conns, connectionID)
		if len(conns) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// Delivers data to every connection in the room except excludeConnID
// (empty string excludes no one). A connection whose send buffer is full
// is treated as gone and kicked; its own disconnect path runs the
// normal cleanup, so the broadcast to everyone else is never aborted.
func (h *Hub) Publish(roomID string, data []byte, excludeConnID string) {
	if data == nil {
		return
	}

	h.mu.RLock()
	var stale []*Client
	for id, c := range h.rooms[roomID] {
		if id == excludeConnID {
			continue
		}
		select {
		case c.send <- data:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		log.Printf("🚫 Dropping slow client %s in room %s", c.id, roomID)
		c.kick()
	}
}

// Number of rooms with at least one live connection
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, conns := range h.rooms {
		count += len(conns)
	}
	return count
}
