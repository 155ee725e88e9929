package server

import "time"

type DrawingOutcome struct {
	DrawerName     string
	ChainLength    int
	NextDrawerID   string
	NextDrawerName string
	GuessingBegun  bool
	Chain          []DrawingEntry
	PrevDrawing    string
}

type GuessOutcome struct {
	PlayerName string
	Correct    bool
	Breakdown  ScoreBreakdown
	Duplicate  bool
	Round      *RoundOutcome // set when this guess completed the round
}

// SubmitDrawing accepts the current turn-holder's drawing, appends it to the
// chain, and hands the turn on. When the last player in the turn order has
// drawn, the room moves to the guessing phase.
func (r *Room) SubmitDrawing(sessionID, data string) (*DrawingOutcome, error) {
	player, ok := r.player(sessionID)
	if !ok {
		return nil, errPlayerNotFound
	}
	if !player.Connected {
		return nil, stateConflict("session is disconnected")
	}
	if r.Game != gameWhispers || r.State != statePlaying {
		return nil, stateConflict("no drawing round in progress")
	}
	if r.currentDrawerID() != sessionID {
		return nil, stateConflict("not your turn to draw")
	}
	if data == "" {
		return nil, validationError("drawing is required")
	}
	if len(data) > maxDrawingBytes {
		return nil, validationError("drawing is too large")
	}

	r.touch()
	r.Whispers.Chain = append(r.Whispers.Chain, DrawingEntry{
		SessionID: sessionID,
		Name:      player.Name,
		Data:      data,
	})
	out := &DrawingOutcome{
		DrawerName:  player.Name,
		ChainLength: len(r.Whispers.Chain),
	}

	// Walk forward without wrapping: past the end of the order means every
	// seat has drawn and guessing begins.
	next := -1
	for idx := r.Whispers.CurrentIndex + 1; idx < len(r.Whispers.TurnOrder); idx++ {
		if p, ok := r.player(r.Whispers.TurnOrder[idx]); ok && p.Connected {
			next = idx
			break
		}
	}
	if next == -1 {
		r.State = stateGuessing
		r.Whispers.GuessStartedAt = time.Now().UTC()
		out.GuessingBegun = true
		out.Chain = append([]DrawingEntry(nil), r.Whispers.Chain...)
		return out, nil
	}
	r.Whispers.CurrentIndex = next
	out.NextDrawerID = r.Whispers.TurnOrder[next]
	out.PrevDrawing = data
	if p, ok := r.player(out.NextDrawerID); ok {
		out.NextDrawerName = p.Name
	}
	return out, nil
}

// SubmitGuess scores a guess against the secret word. A second guess from the
// same session in the same round is ignored, not an error. The round
// completes once every connected non-host player has guessed.
func (r *Room) SubmitGuess(sessionID, guess string) (*GuessOutcome, error) {
	player, ok := r.player(sessionID)
	if !ok {
		return nil, errPlayerNotFound
	}
	if !player.Connected {
		return nil, stateConflict("session is disconnected")
	}
	if player.isHost() {
		return nil, stateConflict("the host does not guess")
	}
	if r.Game != gameWhispers || r.State != stateGuessing {
		return nil, stateConflict("no guessing round in progress")
	}
	cleaned, err := validateGuess(guess)
	if err != nil {
		return nil, validationError(err.Error())
	}
	if _, already := r.Whispers.Guesses[sessionID]; already {
		return &GuessOutcome{PlayerName: player.Name, Duplicate: true}, nil
	}

	r.touch()
	r.Whispers.Guesses[sessionID] = cleaned
	correct := equalWord(cleaned, r.Whispers.Word)

	// Leaderboard context from before this event, so the comeback bonus
	// cannot feed itself.
	leader := r.leaderScore()
	prior := player.Score

	if correct {
		player.Streak++
		player.Skips = 0
		player.CorrectAnswers++
	} else {
		player.Streak = 0
		player.Skips++
		player.RoundWrong = true
	}

	elapsed := time.Since(r.Whispers.GuessStartedAt).Seconds()
	limit := r.cfg.TimeLimit(gameWhispers, r.connectedCount())
	breakdown := scoreAnswer(scoreInput{
		GameKind:    gameWhispers,
		Correct:     correct,
		Guess:       cleaned,
		Target:      r.Whispers.Word,
		Elapsed:     elapsed,
		TimeLimit:   limit.Seconds(),
		Streak:      player.Streak,
		Skips:       player.Skips,
		PlayerScore: prior,
		LeaderScore: leader,
		Points:      r.cfg.Points,
		MaxSkips:    r.cfg.MaxConsecutiveSkips,
	})
	player.Score += breakdown.Total
	player.RoundScore += breakdown.Total

	out := &GuessOutcome{
		PlayerName: player.Name,
		Correct:    correct,
		Breakdown:  breakdown,
	}
	if r.allGuessesIn() {
		r.cancelTimerLocked()
		out.Round = r.finishRound("all_answered")
	}
	return out, nil
}

func (r *Room) allGuessesIn() bool {
	for _, p := range r.connectedPlayers() {
		if _, ok := r.Whispers.Guesses[p.SessionID]; !ok {
			return false
		}
	}
	return true
}

// timeoutWhispers forces progress when the round timer fires: in the drawing
// phase the absent drawer's turn is skipped, in the guessing phase everyone
// who has not answered is counted as a skip and the round closes.
func (r *Room) timeoutWhispers() (*DrawingOutcome, *RoundOutcome) {
	switch r.State {
	case statePlaying:
		out := &DrawingOutcome{}
		if p, ok := r.player(r.currentDrawerID()); ok {
			p.Streak = 0
			p.Skips++
			out.DrawerName = p.Name
		}
		next := -1
		for idx := r.Whispers.CurrentIndex + 1; idx < len(r.Whispers.TurnOrder); idx++ {
			if p, ok := r.player(r.Whispers.TurnOrder[idx]); ok && p.Connected {
				next = idx
				break
			}
		}
		if next == -1 {
			r.State = stateGuessing
			r.Whispers.GuessStartedAt = time.Now().UTC()
			out.GuessingBegun = true
			out.Chain = append([]DrawingEntry(nil), r.Whispers.Chain...)
			return out, nil
		}
		r.Whispers.CurrentIndex = next
		out.NextDrawerID = r.Whispers.TurnOrder[next]
		if len(r.Whispers.Chain) > 0 {
			out.PrevDrawing = r.Whispers.Chain[len(r.Whispers.Chain)-1].Data
		}
		if p, ok := r.player(out.NextDrawerID); ok {
			out.NextDrawerName = p.Name
		}
		return out, nil
	case stateGuessing:
		for _, p := range r.connectedPlayers() {
			if _, answered := r.Whispers.Guesses[p.SessionID]; !answered {
				p.Streak = 0
				p.Skips++
			}
		}
		return nil, r.finishRound("timeout")
	}
	return nil, nil
}

func equalWord(guess, target string) bool {
	return normalizeAnswer(guess) == normalizeAnswer(target)
}
