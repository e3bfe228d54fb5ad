package ws

import (
	"encoding/json"
	"testing"
)

func TestParseEnvelopeJoin(t *testing.T) {
	env, err := parseEnvelope([]byte(`{"type":"join","roomId":"r1","displayName":"Alice"}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if env.Type != MsgJoin || env.RoomID != "r1" || env.DisplayName != "Alice" {
		t.Errorf("Envelope fields wrong: %+v", env)
	}
}

func TestParseEnvelopeOperation(t *testing.T) {
	raw := `{"type":"operation","points":[{"x":1,"y":2}],"color":"#000","width":3,"tool":"eraser"}`
	env, err := parseEnvelope([]byte(raw))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(env.Points) != 1 || env.Points[0].Y != 2 {
		t.Errorf("Points not decoded: %+v", env.Points)
	}
	if env.Tool != "eraser" || env.Width != 3 {
		t.Errorf("Stroke attributes wrong: %+v", env)
	}
}

func TestParseEnvelopeRejectsGarbage(t *testing.T) {
	if _, err := parseEnvelope([]byte("not json")); err == nil {
		t.Error("Malformed JSON should error")
	}
	if _, err := parseEnvelope([]byte(`{"roomId":"r1"}`)); err == nil {
		t.Error("Missing type tag should error")
	}
}

func TestMarshalEventShapes(t *testing.T) {
	data := marshalEvent(undoEvent{Type: EvtUndo, OperationID: 7})
	if data == nil {
		t.Fatal("Event should marshal")
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Event should round-trip: %v", err)
	}
	if decoded["type"] != EvtUndo {
		t.Errorf("Expected type %q, got %v", EvtUndo, decoded["type"])
	}
	if decoded["operationId"] != float64(7) {
		t.Errorf("Expected operationId 7, got %v", decoded["operationId"])
	}
}
