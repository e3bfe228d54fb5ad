package room

import (
	"sync/atomic"
	"time"
)

// A connected user's identity within a room
type Participant struct {
	ConnectionID string    `json:"connectionId"`
	DisplayName  string    `json:"displayName"`
	Color        string    `json:"color"`
	JoinedAt     time.Time `json:"joinedAt"`
}

// Fixed palette cycled globally across all rooms, so two participants
// joining different rooms still get distinct colors most of the time.
var palette = [12]string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8",
	"#f58231", "#911eb4", "#46f0f0", "#f032e6",
	"#bcf60c", "#fabebe", "#008080", "#e6beff",
}

var paletteNext uint64

// Returns the next palette entry, round-robin
func NextColor() string {
	n := atomic.AddUint64(&paletteNext, 1) - 1
	return palette[n%uint64(len(palette))]
}
