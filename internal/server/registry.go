package server

import (
	"log"
	"sync"
	"time"

	"party-games/internal/config"
)

// Registry owns the room map. The registry mutex guards only the map itself;
// each room carries its own lock, so actions in different rooms never contend.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	cfg   config.Config
}

func NewRegistry(cfg config.Config) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		cfg:   cfg,
	}
}

// GetOrCreate returns the room for code, creating it on first use. Room codes
// are minted by the hosting layer; the registry only indexes them.
func (reg *Registry) GetOrCreate(code string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if room, ok := reg.rooms[code]; ok {
		return room
	}
	room := newRoom(code, reg.cfg)
	reg.rooms[code] = room
	log.Printf("room created room_id=%s", code)
	return room
}

func (reg *Registry) Get(code string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[code]
	return room, ok
}

// Update runs fn with the room's lock held. This is the single-writer
// boundary: every mutation of a room's state goes through here, so two
// actions for the same room never interleave their reads and writes.
func (reg *Registry) Update(code string, fn func(room *Room) error) (*Room, error) {
	room, ok := reg.Get(code)
	if !ok {
		return nil, errRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if err := fn(room); err != nil {
		return nil, err
	}
	return room, nil
}

// Sweep removes rooms that have had zero connected players for at least the
// grace period. It runs on a timer, never on connect events, so transient
// reconnect gaps do not destroy a live room. Returns the removed codes.
func (reg *Registry) Sweep(grace time.Duration) []string {
	now := time.Now().UTC()
	reg.mu.Lock()
	defer reg.mu.Unlock()
	var removed []string
	for code, room := range reg.rooms {
		room.mu.Lock()
		stale := !room.anyConnected() && !room.emptySince.IsZero() &&
			now.Sub(room.emptySince) >= grace
		if stale {
			room.cancelTimerLocked()
		}
		room.mu.Unlock()
		if stale {
			delete(reg.rooms, code)
			removed = append(removed, code)
			log.Printf("room swept room_id=%s idle=%s", code, now.Sub(room.emptySince))
		}
	}
	return removed
}

// Remove drops a room immediately, e.g. on explicit host cancel.
func (reg *Registry) Remove(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if room, ok := reg.rooms[code]; ok {
		room.mu.Lock()
		room.cancelTimerLocked()
		room.mu.Unlock()
		delete(reg.rooms, code)
		log.Printf("room removed room_id=%s", code)
	}
}

func (reg *Registry) Codes() []string {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	codes := make([]string, 0, len(reg.rooms))
	for code := range reg.rooms {
		codes = append(codes, code)
	}
	return codes
}
