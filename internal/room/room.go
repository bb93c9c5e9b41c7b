package room

import (
	"strings"
	"sync"
	"time"

	"tileclaim/internal/board"
	"tileclaim/internal/shared"
)

// Room is an isolated game session. Its mutex serializes every mutation and
// the snapshot/broadcast that follows it, so clients never observe a
// half-applied event.
type Room struct {
	mu sync.Mutex

	Code      string
	MapID     string
	Players   map[string]*shared.Player
	Board     []board.Tile
	CreatedAt time.Time

	// join order, kept so snapshots list players stably
	order []string
}

func newRoom(code, mapID string, tiles []board.Tile) *Room {
	return &Room{
		Code:      code,
		MapID:     mapID,
		Players:   make(map[string]*shared.Player),
		Board:     tiles,
		CreatedAt: time.Now(),
	}
}

func newPlayer(connID, name string) *shared.Player {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Player"
	}
	return &shared.Player{ID: connID, Name: name}
}

// addPlayer registers (or re-registers) a connection. Rejoining with the same
// connection id overwrites the player, resetting its score, but keeps its
// original position in the join order. Caller holds r.mu.
func (r *Room) addPlayer(connID, name string) {
	if _, ok := r.Players[connID]; !ok {
		r.order = append(r.order, connID)
	}
	r.Players[connID] = newPlayer(connID, name)
}

// removePlayer drops a connection's player and reports whether the room is
// now empty. Tile claims of the departed player are left in place. Caller
// holds r.mu.
func (r *Room) removePlayer(connID string) bool {
	delete(r.Players, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return len(r.Players) == 0
}

// snapshot projects the current state. Caller holds r.mu.
func (r *Room) snapshot() shared.Snapshot {
	players := make([]shared.Player, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, *r.Players[id])
	}
	tiles := make([]board.Tile, len(r.Board))
	copy(tiles, r.Board)
	return shared.Snapshot{MapID: r.MapID, Players: players, Board: tiles}
}
