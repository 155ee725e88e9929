package server

import (
	"party-games/internal/content"
)

type ContestantOutcome struct {
	ContestantID   string
	ContestantName string
	ChaserName     string
	Category       string
	Question       *content.ChaseQuestion
	BoardSize      int
}

type ChaseOutcome struct {
	PlayerName     string
	PlayerType     string // "chaser" or "contestant"
	Correct        bool
	CorrectAnswer  string
	PositionChange int
	Position       int
	NextQuestion   *content.ChaseQuestion
	GameOver       bool
	Winner         string // "chaser" or "contestant"
	WinBonus       int
	Round          *RoundOutcome // set when the duel ended the final round
	NextRound      int           // next duel's round number when the game continues
}

// SelectContestant puts a player on the track against the chaser and deals a
// fresh question set. Host-only, from the chase_setup state.
func (r *Room) SelectContestant(requesterID, contestantID string) (*ContestantOutcome, error) {
	if requesterID != r.HostID {
		return nil, errNotHost
	}
	if r.Game != gameChase || r.State != stateChaseSetup {
		return nil, stateConflict("no chase waiting for a contestant")
	}
	contestant, ok := r.player(contestantID)
	if !ok {
		return nil, errPlayerNotFound
	}
	if !contestant.Connected || contestant.isHost() || contestantID == r.Chase.ChaserID {
		return nil, stateConflict("invalid contestant")
	}

	r.touch()
	questions, _ := content.NextChaseQuestions(r.Chase.Category)
	r.Chase.Questions = questions
	r.Chase.ContestantID = contestantID
	r.Chase.Position = 0
	r.Chase.DoubleSteps = 1
	r.State = stateChaseQuestion

	chaserName := ""
	if chaser, ok := r.player(r.Chase.ChaserID); ok {
		chaserName = chaser.Name
	}
	return &ContestantOutcome{
		ContestantID:   contestantID,
		ContestantName: contestant.Name,
		ChaserName:     chaserName,
		Category:       r.Chase.Category,
		Question:       r.currentChaseQuestion(),
		BoardSize:      r.cfg.ChaseBoardSize,
	}, nil
}

// SubmitChaseAnswer processes one answer in the duel. Only the chaser or the
// active contestant may answer. A correct contestant answer moves the track
// position up (by two when the double-step power-up is armed), a correct
// chaser answer moves it down. The position always stays in
// [-1, board size]; hitting either bound ends the duel.
func (r *Room) SubmitChaseAnswer(sessionID, answer string, useDouble bool) (*ChaseOutcome, error) {
	player, ok := r.player(sessionID)
	if !ok {
		return nil, errPlayerNotFound
	}
	if !player.Connected {
		return nil, stateConflict("session is disconnected")
	}
	if r.Game != gameChase || r.State != stateChaseQuestion {
		return nil, stateConflict("no chase question in progress")
	}
	isContestant := sessionID == r.Chase.ContestantID
	isChaser := sessionID == r.Chase.ChaserID
	if !isContestant && !isChaser {
		return nil, stateConflict("only the chaser or the contestant may answer")
	}
	question := r.currentChaseQuestion()
	if question == nil {
		return nil, stateConflict("no chase question in progress")
	}
	cleaned, err := validateAnswer(answer)
	if err != nil {
		return nil, validationError(err.Error())
	}

	r.touch()
	correct := cleaned == question.Correct
	out := &ChaseOutcome{
		PlayerName:    player.Name,
		PlayerType:    "chaser",
		Correct:       correct,
		CorrectAnswer: question.Correct,
	}
	if isContestant {
		out.PlayerType = "contestant"
	}
	if correct {
		player.CorrectAnswers++
	}

	board := r.cfg.ChaseBoardSize
	switch {
	case isContestant && correct:
		step := 1
		if useDouble && r.Chase.DoubleSteps > 0 {
			r.Chase.DoubleSteps--
			step = 2
		}
		if r.Chase.Position+step > board {
			step = board - r.Chase.Position
		}
		r.Chase.Position += step
		out.PositionChange = step
	case isChaser && correct:
		r.Chase.Position--
		out.PositionChange = -1
	}
	out.Position = r.Chase.Position

	switch {
	case r.Chase.Position >= board:
		r.endChase(out, "contestant")
	case r.Chase.Position <= -1:
		r.endChase(out, "chaser")
	default:
		r.Chase.Questions = r.Chase.Questions[1:]
		if next := r.currentChaseQuestion(); next != nil {
			out.NextQuestion = next
			return out, nil
		}
		// Queue exhausted with neither bound reached: whoever is ahead of
		// the starting midpoint takes the duel.
		if r.Chase.Position > 0 {
			r.endChase(out, "contestant")
		} else {
			r.endChase(out, "chaser")
		}
	}
	return out, nil
}

// endChase closes the duel, awards the terminal bonus, and either loops back
// to contestant selection or finishes the game after the last round.
func (r *Room) endChase(out *ChaseOutcome, winner string) {
	out.GameOver = true
	out.Winner = winner
	var winnerID string
	if winner == "contestant" {
		winnerID = r.Chase.ContestantID
		out.WinBonus = r.cfg.Points.ChaseWin
	} else {
		winnerID = r.Chase.ChaserID
		out.WinBonus = r.cfg.Points.ChaseCatch
	}
	if p, ok := r.player(winnerID); ok && !p.isHost() {
		p.Score += out.WinBonus
		p.RoundScore += out.WinBonus
	}

	if r.Round >= r.TotalRounds {
		round := &RoundOutcome{
			Round:       r.Round,
			Reason:      "chase_over",
			HostID:      r.HostID,
			RoundScores: map[string]int{},
			Finished:    true,
			Music:       musicGameOver,
		}
		for _, p := range r.Players {
			if !p.isHost() {
				round.RoundScores[p.Name] = p.RoundScore
			}
		}
		round.Leaderboard = r.leaderboard()
		round.Final = r.finishGame()
		out.Round = round
		return
	}
	r.Round++
	for _, p := range r.Players {
		p.RoundScore = 0
	}
	r.Chase.ContestantID = ""
	r.Chase.Position = 0
	r.Chase.Questions = nil
	r.State = stateChaseSetup
	out.NextRound = r.Round
}

// timeoutChase discards the current question when neither side answered in
// time. The position does not move, so only queue exhaustion can end the duel
// here.
func (r *Room) timeoutChase() *ChaseOutcome {
	if r.Game != gameChase || r.State != stateChaseQuestion {
		return nil
	}
	question := r.currentChaseQuestion()
	if question == nil {
		return nil
	}
	out := &ChaseOutcome{
		PlayerType:    "none",
		CorrectAnswer: question.Correct,
		Position:      r.Chase.Position,
	}
	r.touch()
	r.Chase.Questions = r.Chase.Questions[1:]
	if next := r.currentChaseQuestion(); next != nil {
		out.NextQuestion = next
		return out
	}
	if r.Chase.Position > 0 {
		r.endChase(out, "contestant")
	} else {
		r.endChase(out, "chaser")
	}
	return out
}

func (r *Room) currentChaseQuestion() *content.ChaseQuestion {
	if len(r.Chase.Questions) == 0 {
		return nil
	}
	return &r.Chase.Questions[0]
}
