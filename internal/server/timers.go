package server

import (
	"log"
	"time"
)

// scheduleRoundTimer arms the room's round timer for its current state. Must
// run inside the room's Update boundary. Arming bumps the room's timer
// generation, so any previously scheduled callback becomes a no-op even if it
// already fired and is waiting on the room lock.
func (s *Server) scheduleRoundTimer(room *Room) {
	room.cancelTimerLocked()
	d := s.roundDuration(room)
	if d <= 0 {
		return
	}
	gen := room.timerGen
	code := room.Code
	room.timer = time.AfterFunc(d, func() {
		s.roundTimerFired(code, gen)
	})
}

func (s *Server) roundDuration(room *Room) time.Duration {
	count := room.connectedCount()
	switch {
	case room.Game == gameWhispers && room.State == statePlaying:
		return room.cfg.TimeLimit("whispers_drawing", count)
	case room.Game == gameWhispers && room.State == stateGuessing:
		return room.cfg.TimeLimit(gameWhispers, count)
	case room.Game == gameTrivia && room.State == statePlaying:
		return room.cfg.TimeLimit(gameTrivia, count)
	case room.Game == gameChase && room.State == stateChaseQuestion:
		return room.cfg.TimeLimit(gameChase, count)
	}
	return 0
}

// roundTimerFired is the timer callback. It re-enters through the room's
// single-writer boundary and verifies its generation still matches before
// touching anything, so a stale timer can never fire into a later round.
func (s *Server) roundTimerFired(code string, gen uint64) {
	var (
		drawing  *DrawingOutcome
		round    *RoundOutcome
		chase    *ChaseOutcome
		roundNum int
	)
	room, err := s.registry.Update(code, func(r *Room) error {
		if gen != r.timerGen {
			return nil
		}
		switch r.Game {
		case gameWhispers:
			drawing, round = r.timeoutWhispers()
		case gameTrivia:
			round = r.timeoutTrivia()
		case gameChase:
			chase = r.timeoutChase()
		}
		roundNum = r.Round
		if r.playing() {
			s.scheduleRoundTimer(r)
		}
		return nil
	})
	if err != nil {
		return
	}
	if drawing != nil {
		log.Printf("round timer skipped drawer room_id=%s round=%d", code, roundNum)
		s.broadcastDrawingOutcome(room, drawing)
	}
	if chase != nil {
		log.Printf("round timer advanced chase room_id=%s", code)
		s.broadcastChaseOutcome(room, chase)
		round = chase.Round
	}
	if round != nil {
		log.Printf("round timed out room_id=%s round=%d", code, round.Round)
		s.broadcastRoundOutcome(room, round)
	}
}
