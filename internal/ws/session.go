package ws

import (
	"log"
	"time"

	"github.com/sketchwire/sketchwire/internal/room"
	"github.com/sketchwire/sketchwire/internal/store"
)

// Room a connection falls into when the client sends no room id
const defaultRoomID = "default"

// Per-connection state machine. A session is either unbound (no room)
// or bound to exactly one room; every command from the connection flows
// through here. All methods run on the connection's read goroutine, so
// transitions never race with each other.
type Session struct {
	hub    *Hub
	store  *store.Store
	client *Client

	// nil while unbound
	binding *binding
}

// The Bound half of the session state
type binding struct {
	room        *room.Room
	participant room.Participant
}

func newSession(hub *Hub, st *store.Store, client *Client) *Session {
	return &Session{
		hub:    hub,
		store:  st,
		client: client,
	}
}

// Dispatches one client command. Commands other than join are silently
// ignored while unbound; clients racing a reconnect are tolerated.
func (s *Session) Handle(env *Envelope) {
	switch env.Type {
	case MsgJoin:
		s.join(env.RoomID, env.DisplayName)
	case MsgOperation:
		s.submitOperation(env)
	case MsgCursor:
		s.cursorUpdate(env.X, env.Y)
	case MsgUndo:
		s.requestUndo()
	case MsgClear:
		s.requestClear()
	default:
		log.Printf("Client %s sent unknown message type %q", s.client.id, env.Type)
	}
}

func (s *Session) join(roomID, displayName string) {
	if roomID == "" {
		roomID = defaultRoomID
	}

	// Switching rooms leaves the old one first, so the connection never
	// holds two memberships at once
	s.leave()

	if displayName == "" {
		displayName = guestName(s.client.id)
	}

	p := room.Participant{
		ConnectionID: s.client.id,
		DisplayName:  displayName,
		Color:        room.NextColor(),
		JoinedAt:     time.Now(),
	}

	rm := s.store.GetOrCreate(roomID)

	// Attach before snapshotting so an operation appended concurrently
	// is either in the sync or broadcast to us, never lost between the
	// two. A duplicate is fine; a gap is not.
	s.hub.Attach(roomID, s.client)
	ops, members := rm.Join(p)
	s.binding = &binding{room: rm, participant: p}

	// The joiner's own sync must be queued before any event that could
	// show it its own arrival
	s.client.enqueue(marshalEvent(syncEvent{
		Type:         EvtSync,
		ConnectionID: s.client.id,
		Participant:  p,
		Operations:   ops,
		Members:      members,
	}))
	s.hub.Publish(roomID, marshalEvent(participantJoinedEvent{
		Type:        EvtParticipantJoined,
		Participant: p,
	}), s.client.id)
	s.hub.Publish(roomID, marshalEvent(membersChangedEvent{
		Type:    EvtMembersChanged,
		Members: members,
	}), "")

	log.Printf("Client %s joined room %s as %q (members: %d)",
		s.client.id, roomID, displayName, len(members))
}

func (s *Session) submitOperation(env *Envelope) {
	b := s.binding
	if b == nil {
		return
	}

	op := b.room.Append(room.Stroke{
		Points: env.Points,
		Color:  env.Color,
		Width:  env.Width,
		Tool:   env.Tool,
	}, b.participant.ConnectionID, b.participant.DisplayName)

	// The sender already drew this locally; everyone else gets the
	// finalized record
	s.hub.Publish(b.room.ID, marshalEvent(operationEvent{
		Type:      EvtOperation,
		Operation: op,
	}), s.client.id)
}

// Ephemeral presence, never logged or replayed
func (s *Session) cursorUpdate(x, y float64) {
	b := s.binding
	if b == nil {
		return
	}

	s.hub.Publish(b.room.ID, marshalEvent(cursorEvent{
		Type:         EvtCursor,
		ConnectionID: b.participant.ConnectionID,
		DisplayName:  b.participant.DisplayName,
		Color:        b.participant.Color,
		X:            x,
		Y:            y,
	}), s.client.id)
}

// Global undo: removes the newest operation whoever drew it. Everyone,
// the requester included, must drop the same id.
func (s *Session) requestUndo() {
	b := s.binding
	if b == nil {
		return
	}

	op, ok := b.room.UndoLast()
	if !ok {
		return
	}
	s.hub.Publish(b.room.ID, marshalEvent(undoEvent{
		Type:        EvtUndo,
		OperationID: op.ID,
	}), "")
}

func (s *Session) requestClear() {
	b := s.binding
	if b == nil {
		return
	}

	b.room.Clear()
	s.hub.Publish(b.room.ID, marshalEvent(clearedEvent{Type: EvtCleared}), "")
}

// Runs the full cleanup even when the socket is already gone: remove
// membership, tell the remaining room, arm the grace-delay reclaim.
func (s *Session) Disconnect() {
	if s.binding != nil {
		log.Printf("Client %s disconnected from room %s", s.client.id, s.binding.room.ID)
	}
	s.leave()
}

func (s *Session) leave() {
	b := s.binding
	if b == nil {
		return
	}
	s.binding = nil

	b.room.RemoveMember(s.client.id)
	s.hub.Detach(b.room.ID, s.client.id)

	s.hub.Publish(b.room.ID, marshalEvent(participantLeftEvent{
		Type:         EvtParticipantLeft,
		ConnectionID: s.client.id,
	}), "")
	s.hub.Publish(b.room.ID, marshalEvent(membersChangedEvent{
		Type:    EvtMembersChanged,
		Members: b.room.Members(),
	}), "")

	s.store.ScheduleReclaim(b.room.ID)
}

func guestName(connectionID string) string {
	if len(connectionID) > 8 {
		connectionID = connectionID[:8]
	}
	return "Guest-" + connectionID
}
