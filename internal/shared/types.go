package shared

import "tileclaim/internal/board"

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Snapshot is the full read-only projection of a room sent to clients after
// every committed mutation.
type Snapshot struct {
	MapID   string       `json:"mapId"`
	Players []Player     `json:"players"`
	Board   []board.Tile `json:"board"`
}
