package server

import (
	"fmt"
	"testing"

	"party-games/internal/config"
)

// testRoom builds a room with a host plus the named players. Session IDs are
// p1, p2, ... in the given order; the host session is "host".
func testRoom(t *testing.T, cfg config.Config, names ...string) *Room {
	t.Helper()
	room := newRoom("TEST42", cfg)
	if _, err := room.Join("host", "", true, ""); err != nil {
		t.Fatalf("host join: %v", err)
	}
	for i, name := range names {
		if _, err := room.Join(fmt.Sprintf("p%d", i+1), name, false, ""); err != nil {
			t.Fatalf("join %s: %v", name, err)
		}
	}
	return room
}

// drawThrough submits one drawing per turn until the room flips to guessing.
func drawThrough(t *testing.T, room *Room) {
	t.Helper()
	for i := 0; i < len(room.Whispers.TurnOrder)+1; i++ {
		drawer := room.currentDrawerID()
		out, err := room.SubmitDrawing(drawer, "data:image/png;base64,aGk=")
		if err != nil {
			t.Fatalf("submit drawing for %s: %v", drawer, err)
		}
		if out.GuessingBegun {
			return
		}
	}
	t.Fatalf("guessing never began")
}
