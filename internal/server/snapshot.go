package server

import "party-games/internal/content"

// questionPayload is the client-facing shape of a trivia question. The
// correct answer never leaves the server before the round resolves.
func questionPayload(q content.Question) map[string]any {
	return map[string]any{
		"question": q.Text,
		"options":  q.Options,
		"category": q.Category,
	}
}

func chaseQuestionPayload(q content.ChaseQuestion) map[string]any {
	return map[string]any{
		"question":   q.Text,
		"options":    q.Options,
		"difficulty": q.Difficulty,
	}
}

// snapshotFor builds the full room state a client needs after connecting or
// rejoining. Secrets stay out: the whispers word goes only to the current
// drawer and the host, and question payloads never carry the correct answer.
func (r *Room) snapshotFor(sessionID string) map[string]any {
	snap := map[string]any{
		"type":         evtRoomState,
		"room_code":    r.Code,
		"state":        r.State,
		"game":         r.Game,
		"round":        r.Round,
		"total_rounds": r.TotalRounds,
		"difficulty":   r.Difficulty,
		"players":      r.playerSummaries(),
		"leaderboard":  r.leaderboard(),
		"music":        r.music(),
	}
	viewer, _ := r.player(sessionID)
	isHost := viewer != nil && viewer.isHost()

	switch r.Game {
	case gameWhispers:
		snap["turn_order"] = r.turnOrderNames()
		snap["chain_length"] = len(r.Whispers.Chain)
		if r.State == statePlaying {
			drawerID := r.currentDrawerID()
			snap["current_drawer"] = r.playerName(drawerID)
			if sessionID == drawerID || isHost {
				snap["word"] = r.Whispers.Word
			}
		}
		if r.State == stateGuessing {
			snap["chain"] = r.Whispers.Chain
			snap["guesses_in"] = len(r.Whispers.Guesses)
			if isHost {
				snap["word"] = r.Whispers.Word
			}
		}
	case gameTrivia:
		if r.State == statePlaying && r.Trivia.Question != nil {
			snap["question"] = questionPayload(*r.Trivia.Question)
			snap["answers_in"] = len(r.Trivia.Answers)
		}
	case gameChase:
		snap["chaser"] = r.playerName(r.Chase.ChaserID)
		snap["category"] = r.Chase.Category
		snap["board_size"] = r.cfg.ChaseBoardSize
		if r.State == stateChaseQuestion {
			snap["contestant"] = r.playerName(r.Chase.ContestantID)
			snap["position"] = r.Chase.Position
			snap["double_steps"] = r.Chase.DoubleSteps
			if q := r.currentChaseQuestion(); q != nil {
				snap["question"] = chaseQuestionPayload(*q)
			}
		}
	}
	if r.State == stateFinished {
		snap["leaderboard"] = r.leaderboard()
	}
	return snap
}

func (r *Room) music() string {
	switch r.State {
	case stateWaiting:
		return musicLobby
	case stateFinished:
		return musicGameOver
	case stateChaseSetup, stateChaseQuestion:
		return musicChase
	}
	switch r.Game {
	case gameWhispers:
		return musicDrawing
	case gameTrivia:
		return musicTrivia
	}
	return musicLobby
}

func (r *Room) playerName(sessionID string) string {
	if p, ok := r.player(sessionID); ok {
		return p.Name
	}
	return ""
}

func (r *Room) turnOrderNames() []string {
	names := make([]string, 0, len(r.Whispers.TurnOrder))
	for _, id := range r.Whispers.TurnOrder {
		if p, ok := r.player(id); ok {
			names = append(names, p.Name)
		}
	}
	return names
}
