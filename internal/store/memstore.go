package store

import (
	"sync"

	"tileclaim/internal/room"
)

// MemoryStore is the process-wide room table. Rooms are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*room.Room{},
	}
}

func (m *MemoryStore) GetRoom(code string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

func (m *MemoryStore) SaveRoom(r *room.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.Code] = r
}

func (m *MemoryStore) DeleteRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

// Codes returns the set of active room codes, for collision-free allocation.
func (m *MemoryStore) Codes() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	codes := make(map[string]bool, len(m.rooms))
	for code := range m.rooms {
		codes[code] = true
	}
	return codes
}
