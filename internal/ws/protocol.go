package ws

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/sketchwire/sketchwire/internal/room"
)

// Client-to-server commands
const (
	MsgJoin      = "join"
	MsgOperation = "operation"
	MsgCursor    = "cursor"
	MsgUndo      = "undo"
	MsgClear     = "clear"
)

// Server-to-client events
const (
	EvtSync              = "sync"
	EvtOperation         = "operation"
	EvtUndo              = "undo"
	EvtCleared           = "cleared"
	EvtParticipantJoined = "participant-joined"
	EvtParticipantLeft   = "participant-left"
	EvtMembersChanged    = "members-changed"
	EvtCursor            = "cursor"
)

// Envelope is the union of every client command; the session reads only
// the fields its type carries.
type Envelope struct {
	Type        string       `json:"type"`
	RoomID      string       `json:"roomId,omitempty"`
	DisplayName string       `json:"displayName,omitempty"`
	Points      []room.Point `json:"points,omitempty"`
	Color       string       `json:"color,omitempty"`
	Width       float64      `json:"width,omitempty"`
	Tool        string       `json:"tool,omitempty"`
	X           float64      `json:"x,omitempty"`
	Y           float64      `json:"y,omitempty"`
}

func parseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Type == "" {
		return nil, fmt.Errorf("missing message type")
	}
	return &env, nil
}

type syncEvent struct {
	Type         string             `json:"type"`
	ConnectionID string             `json:"connectionId"`
	Participant  room.Participant   `json:"participant"`
	Operations   []room.Operation   `json:"operations"`
	Members      []room.Participant `json:"members"`
}

type operationEvent struct {
	Type      string         `json:"type"`
	Operation room.Operation `json:"operation"`
}

type undoEvent struct {
	Type        string `json:"type"`
	OperationID int64  `json:"operationId"`
}

type clearedEvent struct {
	Type string `json:"type"`
}

type participantJoinedEvent struct {
	Type        string           `json:"type"`
	Participant room.Participant `json:"participant"`
}

type participantLeftEvent struct {
	Type         string `json:"type"`
	ConnectionID string `json:"connectionId"`
}

type membersChangedEvent struct {
	Type    string             `json:"type"`
	Members []room.Participant `json:"members"`
}

type cursorEvent struct {
	Type         string  `json:"type"`
	ConnectionID string  `json:"connectionId"`
	DisplayName  string  `json:"displayName"`
	Color        string  `json:"color"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
}

// All event structs marshal cleanly; an error here is a programming bug,
// logged rather than propagated so a broadcast never aborts.
func marshalEvent(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error encoding event %T: %v", v, err)
		return nil
	}
	return data
}
