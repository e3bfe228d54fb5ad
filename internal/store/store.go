package store

import (
	"log"
	"sync"
	"time"

	"github.com/sketchwire/sketchwire/internal/room"
)

type Config struct {
	// How long an empty room survives a disconnect before reclamation,
	// so a quick refresh does not lose the drawing
	GraceDelay time.Duration

	// Backstop sweep cadence for empty rooms
	SweepInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		GraceDelay:    10 * time.Second,
		SweepInterval: 60 * time.Second,
	}
}

// Owns every live room. Creation and deletion run under the store lock;
// each room's own state is guarded by the room itself, so rooms never
// contend with each other on their data path.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room

	config Config
	stop   chan struct{}
	wg     sync.WaitGroup
}

func New(config Config) *Store {
	return &Store{
		rooms:  make(map[string]*room.Room),
		config: config,
		stop:   make(chan struct{}),
	}
}

// Returns the room for the key, constructing it lazily. Concurrent calls
// for the same key always yield the same instance.
func (s *Store) GetOrCreate(id string) *room.Room {
	s.mu.RLock()
	r, ok := s.rooms[id]
	s.mu.RUnlock()
	if ok {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.rooms[id]; ok {
		return r
	}
	r = room.New(id)
	s.rooms[id] = r
	log.Printf("Room %s created", id)
	return r
}

// Non-creating lookup
func (s *Store) Get(id string) (*room.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Deletes the room only if it currently has no members. A participant
// who rejoined during the grace delay makes this a no-op.
func (s *Store) Reclaim(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[id]
	if !ok || !r.Empty() {
		return false
	}
	delete(s.rooms, id)
	log.Printf("Room %s closed (empty)", id)
	return true
}

// Arms a grace-delay reclamation for the room. The timer callback only
// re-checks membership; it never holds state of its own, so a rejoin
// before the delay elapses simply turns it into a no-op.
func (s *Store) ScheduleReclaim(id string) {
	time.AfterFunc(s.config.GraceDelay, func() {
		s.Reclaim(id)
	})
}

// Reclaims every empty room and reports how many were removed
func (s *Store) SweepEmpty() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, r := range s.rooms {
		if r.Empty() {
			delete(s.rooms, id)
			count++
		}
	}
	return count
}

// Starts the periodic sweep, a backstop behind per-disconnect
// grace-delay reclamation
func (s *Store) Start() {
	s.wg.Add(1)
	go s.run()
	log.Printf("🧹 Room sweeper started (interval: %v, grace: %v)",
		s.config.SweepInterval, s.config.GraceDelay)
}

func (s *Store) Stop() {
	close(s.stop)
	s.wg.Wait()
	log.Println("🧹 Room sweeper stopped")
}

func (s *Store) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.SweepEmpty(); n > 0 {
				log.Printf("Swept %d empty room(s)", n)
			}
		}
	}
}
