package server

import "time"

type AnswerOutcome struct {
	PlayerName    string
	Correct       bool
	CorrectAnswer string
	Breakdown     ScoreBreakdown
	Duplicate     bool
	Round         *RoundOutcome
}

// SubmitAnswer scores a trivia answer using the elapsed time since the round
// started. Duplicate submissions from the same session in the same round are
// ignored rather than rejected, so a retrying client cannot double-score.
func (r *Room) SubmitAnswer(sessionID, answer string) (*AnswerOutcome, error) {
	player, ok := r.player(sessionID)
	if !ok {
		return nil, errPlayerNotFound
	}
	if !player.Connected {
		return nil, stateConflict("session is disconnected")
	}
	if player.isHost() {
		return nil, stateConflict("the host does not answer")
	}
	if r.Game != gameTrivia || r.State != statePlaying || r.Trivia.Question == nil {
		return nil, stateConflict("no trivia round in progress")
	}
	cleaned, err := validateAnswer(answer)
	if err != nil {
		return nil, validationError(err.Error())
	}
	if _, already := r.Trivia.Answers[sessionID]; already {
		return &AnswerOutcome{PlayerName: player.Name, Duplicate: true}, nil
	}

	r.touch()
	correct := cleaned == r.Trivia.Question.Correct
	elapsed := time.Since(r.Trivia.StartedAt).Seconds()
	r.Trivia.Answers[sessionID] = TriviaAnswer{
		Answer:  cleaned,
		Elapsed: elapsed,
		Correct: correct,
	}

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

	limit := r.cfg.TimeLimit(gameTrivia, r.connectedCount())
	breakdown := scoreAnswer(scoreInput{
		GameKind:    gameTrivia,
		Correct:     correct,
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

	out := &AnswerOutcome{
		PlayerName:    player.Name,
		Correct:       correct,
		CorrectAnswer: r.Trivia.Question.Correct,
		Breakdown:     breakdown,
	}
	if r.allAnswersIn() {
		r.cancelTimerLocked()
		out.Round = r.finishRound("all_answered")
	}
	return out, nil
}

func (r *Room) allAnswersIn() bool {
	for _, p := range r.connectedPlayers() {
		if _, ok := r.Trivia.Answers[p.SessionID]; !ok {
			return false
		}
	}
	return true
}

// timeoutTrivia closes the round when the timer fires; players who never
// answered lose their streak and accrue a skip.
func (r *Room) timeoutTrivia() *RoundOutcome {
	if r.Game != gameTrivia || r.State != statePlaying {
		return nil
	}
	for _, p := range r.connectedPlayers() {
		if _, answered := r.Trivia.Answers[p.SessionID]; !answered {
			p.Streak = 0
			p.Skips++
		}
	}
	return r.finishRound("timeout")
}
