package room

import "time"

// Tool selectors accepted on a stroke
const (
	ToolBrush  = "brush"
	ToolEraser = "eraser"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// One server-ordered drawing contribution. IDs are assigned at append
// time and form a gap-free ascending sequence within a room.
type Operation struct {
	ID         int64     `json:"id"`
	Kind       string    `json:"kind"`
	Points     []Point   `json:"points"`
	Color      string    `json:"color"`
	Width      float64   `json:"width"`
	Tool       string    `json:"tool"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// The client-supplied part of an operation, before the server assigns
// id, author and timestamp
type Stroke struct {
	Points []Point
	Color  string
	Width  float64
	Tool   string
}
