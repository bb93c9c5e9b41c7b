package room

import (
	"errors"
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"tileclaim/internal/board"
	"tileclaim/internal/config"
	"tileclaim/internal/shared"
)

var ErrRoomNotFound = errors.New("room not found")

type Store interface {
	GetRoom(code string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(code string)
	Codes() map[string]bool
}

// Manager owns all room mutation: creation, membership, tile clicks and
// teardown. Every mutating operation broadcasts the fresh snapshot to the
// room under the room's lock, so a broadcast always reflects the committed
// mutation and exactly one broadcast leaves per logical event.
//
// Lock order is Manager.mu, then Room.mu, then the store's own lock; mu is
// never acquired while a room lock is held.
type Manager struct {
	store Store
	cfg   config.Config
	hub   Broadcaster
	maps  map[string]board.Template

	mu      sync.Mutex
	rng     *rand.Rand
	members map[string]string // connection id -> room code
}

func NewManager(s Store, cfg config.Config) *Manager {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Manager{
		store: s,
		cfg:   cfg,
		maps: map[string]board.Template{
			"small":  board.Generate(cfg.SmallRadius, "small", rng),
			"medium": board.Generate(cfg.MediumRadius, "medium", rng),
			"large":  board.Generate(cfg.LargeRadius, "large", rng),
		},
		rng:     rng,
		members: make(map[string]string),
	}
}

func (m *Manager) SetHub(hub Broadcaster) {
	m.hub = hub
}

// Templates lists the available map templates, sorted by map id.
func (m *Manager) Templates() []board.Template {
	out := make([]board.Template, 0, len(m.maps))
	for _, t := range m.maps {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MapID < out[j].MapID })
	return out
}

// templateFor falls back to the default template on an unknown map id; an
// unknown id is a leniency, not an error.
func (m *Manager) templateFor(mapID string) board.Template {
	if t, ok := m.maps[mapID]; ok {
		return t
	}
	if t, ok := m.maps[m.cfg.DefaultMap]; ok {
		return t
	}
	return m.maps["small"]
}

// CreateRoom opens a new room from the template for mapID and adds the
// creator as its first player. The room keeps the requested mapID even when
// the template fell back to the default. A connection already in another
// room is detached from it first.
func (m *Manager) CreateRoom(mapID, creatorName, connID string) (string, shared.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.leaveLocked(connID)

	code, err := AllocateCode(m.rng, m.store.Codes())
	if err != nil {
		// only reachable with a full 32^4 keyspace
		log.Panicf("allocate room code: %v", err)
	}

	r := newRoom(code, mapID, m.templateFor(mapID).CopyTiles())
	r.mu.Lock()
	r.addPlayer(connID, creatorName)
	m.store.SaveRoom(r)
	m.members[connID] = code
	snap := r.snapshot()
	m.broadcast(code, snap)
	r.mu.Unlock()

	return code, snap
}

// JoinRoom adds the connection to the room behind code (case-insensitive).
// Rejoining a room the connection is already in overwrites its player and
// resets the score; joining a different room detaches it from the old one.
func (m *Manager) JoinRoom(code, playerName, connID string) (shared.Snapshot, error) {
	code = NormalizeCode(code)

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(code)
	if !ok {
		return shared.Snapshot{}, ErrRoomNotFound
	}
	if cur, member := m.members[connID]; member && cur != code {
		m.leaveLocked(connID)
	}

	r.mu.Lock()
	r.addPlayer(connID, playerName)
	m.members[connID] = code
	snap := r.snapshot()
	m.broadcast(code, snap)
	r.mu.Unlock()

	return snap, nil
}

// LeaveRoom removes the connection's player from whichever room it belongs
// to, if any. An emptied room is deleted; otherwise the remaining members
// get the new snapshot. Abandoned tile claims stay in place.
func (m *Manager) LeaveRoom(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaveLocked(connID)
}

// leaveLocked implements LeaveRoom with m.mu held.
func (m *Manager) leaveLocked(connID string) {
	code, ok := m.members[connID]
	if !ok {
		return
	}
	delete(m.members, connID)

	r, ok := m.store.GetRoom(code)
	if !ok {
		return
	}
	r.mu.Lock()
	if r.removePlayer(connID) {
		m.store.DeleteRoom(code)
		r.mu.Unlock()
		return
	}
	m.broadcast(code, r.snapshot())
	r.mu.Unlock()
}

// ClickTile applies the tile-claim state machine for a click by connID.
// Missing room, player or tile is a silent no-op, as is clicking a tile
// owned by someone else; nothing is broadcast unless state changed.
func (m *Manager) ClickTile(code, connID string, tileID int) {
	code = NormalizeCode(code)

	r, ok := m.store.GetRoom(code)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.Players[connID]
	if !ok {
		return
	}
	var tile *board.Tile
	for i := range r.Board {
		if r.Board[i].ID == tileID {
			tile = &r.Board[i]
			break
		}
	}
	if tile == nil {
		return
	}

	switch tile.OwnerID {
	case "":
		tile.OwnerID = connID
		p.Score++
	case connID:
		// self-click unclaims; score has no floor
		tile.OwnerID = ""
		p.Score--
	default:
		// another player's tile: reserved for future mechanics
		return
	}

	m.broadcast(code, r.snapshot())
}

// Snapshot returns the current projection of a room, if it exists.
func (m *Manager) Snapshot(code string) (shared.Snapshot, bool) {
	r, ok := m.store.GetRoom(NormalizeCode(code))
	if !ok {
		return shared.Snapshot{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(), true
}

func (m *Manager) broadcast(code string, snap shared.Snapshot) {
	if m.hub == nil {
		return
	}
	m.hub.Broadcast(code, "roomUpdate", snap)
}

// NormalizeCode uppercases and trims a client-supplied room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
