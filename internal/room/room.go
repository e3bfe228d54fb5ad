package room

import (
	"sync"
	"time"
)

// A collaborative drawing session: an ordered operation log plus the set
// of connected participants. All mutations run under one mutex so ids
// are never duplicated and membership changes never interleave.
type Room struct {
	ID string

	mu      sync.Mutex
	ops     []Operation
	nextID  int64
	members map[string]Participant
	order   []string // connection ids in join order
}

// Creates a new empty room with the given ID
func New(id string) *Room {
	return &Room{
		ID:      id,
		ops:     make([]Operation, 0),
		members: make(map[string]Participant),
	}
}

// Finalizes a stroke: assigns the next id, stamps the server clock,
// records the author identity, and appends it to the log
func (r *Room) Append(s Stroke, authorID, authorName string) Operation {
	r.mu.Lock()
	defer r.mu.Unlock()

	op := Operation{
		ID:         r.nextID,
		Kind:       "stroke",
		Points:     s.Points,
		Color:      s.Color,
		Width:      s.Width,
		Tool:       s.Tool,
		AuthorID:   authorID,
		AuthorName: authorName,
		CreatedAt:  time.Now(),
	}
	r.nextID++
	r.ops = append(r.ops, op)
	return op
}

// Removes and returns the newest operation in the log, regardless of
// who authored it. Reports false on an empty log.
func (r *Room) UndoLast() (Operation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.ops) == 0 {
		return Operation{}, false
	}
	op := r.ops[len(r.ops)-1]
	r.ops = r.ops[:len(r.ops)-1]
	return op, true
}

// Empties the log and restarts ids from 0
func (r *Room) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = make([]Operation, 0)
	r.nextID = 0
}

// Returns a copy of the full log in id order, for initial sync
func (r *Room) Snapshot() []Operation {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]Operation, len(r.ops))
	copy(ops, r.ops)
	return ops
}

// Number of operations currently in the log
func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ops)
}

// Adds the participant and returns the log snapshot plus the member
// list under one lock, so the joiner's initial sync is consistent.
func (r *Room) Join(p Participant) ([]Operation, []Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addMemberLocked(p)
	ops := make([]Operation, len(r.ops))
	copy(ops, r.ops)
	return ops, r.membersLocked()
}

// Idempotent upsert; a duplicate join event overwrites the old identity
func (r *Room) AddMember(p Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addMemberLocked(p)
}

func (r *Room) addMemberLocked(p Participant) {
	if _, ok := r.members[p.ConnectionID]; !ok {
		r.order = append(r.order, p.ConnectionID)
	}
	r.members[p.ConnectionID] = p
}

// No-op if the connection is not a member
func (r *Room) RemoveMember(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[connectionID]; !ok {
		return
	}
	delete(r.members, connectionID)
	for i, id := range r.order {
		if id == connectionID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Returns participants in join order
func (r *Room) Members() []Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.membersLocked()
}

func (r *Room) membersLocked() []Participant {
	members := make([]Participant, 0, len(r.order))
	for _, id := range r.order {
		members = append(members, r.members[id])
	}
	return members
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Drives room reclamation
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members) == 0
}
