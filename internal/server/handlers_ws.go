package server

import "log"

func (s *Server) handleJoin(client *wsClient, evt clientEvent) {
	if s.hub.RoomOf(client.sessionID) != "" {
		s.hub.Send(client, rejection(evtJoinRoom, stateConflict("already in a room")))
		return
	}
	code, err := validateRoomCode(evt.RoomCode)
	if err != nil {
		s.hub.Send(client, rejection(evtJoinRoom, validationError(err.Error())))
		return
	}
	isHost := evt.Role == roleHost
	if _, exists := s.registry.Get(code); !exists {
		s.registry.GetOrCreate(code)
		s.recordEvent(code, "room_created", EventPayload{RoomCode: code})
	}

	var (
		out  *JoinOutcome
		snap map[string]any
	)
	_, err = s.registry.Update(code, func(r *Room) error {
		var joinErr error
		out, joinErr = r.Join(client.sessionID, evt.Name, isHost, evt.Profile)
		if joinErr != nil {
			return joinErr
		}
		snap = r.snapshotFor(client.sessionID)
		return nil
	})
	if err != nil {
		s.hub.Send(client, rejection(evtJoinRoom, err))
		return
	}

	if out.EvictedHostID != "" {
		s.hub.SendTo(out.EvictedHostID, event(evtHostReplaced, map[string]any{
			"room_code": code,
			"message":   "another host took over this room",
		}))
		s.hub.LeaveRoom(out.EvictedHostID)
	}
	s.hub.JoinRoom(client.sessionID, code)
	s.hub.Send(client, event(evtJoinConfirmed, map[string]any{
		"session_id": client.sessionID,
		"room_code":  code,
		"name":       out.Player.Name,
		"role":       out.Player.Role,
		"rejoined":   out.Rejoined,
		"score":      out.Player.Score,
	}))
	s.hub.Send(client, snap)
	// A host join does not change the player list, so only player joins are
	// announced to the room.
	if !isHost {
		s.hub.Broadcast(code, event(evtPlayerJoined, map[string]any{
			"player":   out.Player.Name,
			"rejoined": out.Rejoined,
			"players":  out.Players,
		}))
	}
	log.Printf("player joined room_id=%s player=%s role=%s rejoined=%t",
		code, out.Player.Name, out.Player.Role, out.Rejoined)

	if !isHost {
		s.ensureUser(out.Player.Name, evt.Profile)
	}
	s.recordEvent(code, "player_joined", EventPayload{
		RoomCode:   code,
		PlayerName: out.Player.Name,
	})
}

func (s *Server) handleLeave(client *wsClient) {
	code := s.hub.RoomOf(client.sessionID)
	if code == "" {
		return
	}
	s.hub.LeaveRoom(client.sessionID)
	s.leaveRoom(client.sessionID, code)
}

// disconnectClient runs when the read loop ends for any reason. The player
// record survives as disconnected so the same name can claim it on rejoin.
func (s *Server) disconnectClient(client *wsClient) {
	code := s.hub.Remove(client.sessionID)
	if code == "" {
		return
	}
	s.leaveRoom(client.sessionID, code)
}

func (s *Server) leaveRoom(sessionID, code string) {
	var out *LeaveOutcome
	_, err := s.registry.Update(code, func(r *Room) error {
		var leaveErr error
		out, leaveErr = r.Disconnect(sessionID)
		if leaveErr != nil {
			return leaveErr
		}
		if out.TurnAdvanced {
			s.scheduleRoundTimer(r)
		}
		return nil
	})
	if err != nil {
		return
	}
	log.Printf("player left room_id=%s player=%s state=%s", code, out.PlayerName, out.State)
	s.hub.Broadcast(code, event(evtPlayerLeft, map[string]any{
		"player":  out.PlayerName,
		"players": out.Players,
		"state":   out.State,
	}))
	if out.ChaseCancelled {
		s.hub.Broadcast(code, event(evtChaseInterrupted, map[string]any{
			"reason": out.ChaseReason,
			"state":  out.State,
		}))
	}
	if out.GameCancelled {
		s.hub.Broadcast(code, event(evtGameCancelled, map[string]any{
			"reason": out.CancelReason,
			"music":  musicLobby,
		}))
	}
	if out.TurnAdvanced {
		s.hub.Broadcast(code, event(evtNextDrawer, map[string]any{
			"player": out.NextDrawer,
		}))
		s.hub.SendTo(out.NextDrawerID, event(evtYourTurn, map[string]any{
			"word": out.Word,
		}))
	}
	s.recordEvent(code, "player_left", EventPayload{
		RoomCode:   code,
		PlayerName: out.PlayerName,
		State:      out.State,
	})
}

// handleCancelRoom destroys the room immediately on the host's request, as
// opposed to the sweeper's grace-period expiry. Members get a final
// room_closed frame before their connections drop.
func (s *Server) handleCancelRoom(client *wsClient) {
	room, ok := s.roomUpdate(client, evtCancelRoom, func(r *Room) error {
		if client.sessionID != r.HostID {
			return errNotHost
		}
		return nil
	})
	if !ok {
		return
	}
	log.Printf("room cancelled by host room_id=%s", room.Code)
	s.recordEvent(room.Code, "room_closed", EventPayload{RoomCode: room.Code})
	s.hub.CloseRoom(room.Code, event(evtRoomClosed, map[string]any{
		"room_code": room.Code,
		"message":   "the host closed this room",
	}))
	s.registry.Remove(room.Code)
}

func (s *Server) handleStart(client *wsClient, evt clientEvent) {
	var out *StartOutcome
	room, ok := s.roomUpdate(client, evtStartGame, func(r *Room) error {
		var startErr error
		out, startErr = r.StartGame(client.sessionID, evt.Game, evt.Category)
		if startErr != nil {
			return startErr
		}
		s.scheduleRoundTimer(r)
		return nil
	})
	if !ok {
		return
	}
	log.Printf("game started room_id=%s game=%s rounds=%d", room.Code, out.Game, out.TotalRounds)
	s.broadcastStart(room.Code, out)
	s.recordEvent(room.Code, "game_started", EventPayload{
		RoomCode: room.Code,
		Game:     out.Game,
		Round:    out.Round,
	})
}

func (s *Server) broadcastStart(code string, out *StartOutcome) {
	payload := map[string]any{
		"game":         out.Game,
		"round":        out.Round,
		"total_rounds": out.TotalRounds,
		"music":        out.Music,
	}
	switch out.Game {
	case gameWhispers:
		payload["difficulty"] = out.Content.Difficulty
		payload["turn_order"] = out.Content.TurnOrder
		payload["current_drawer"] = out.Content.DrawerName
	case gameTrivia:
		payload["difficulty"] = out.Content.Difficulty
		if out.Content.Question != nil {
			payload["question"] = questionPayload(*out.Content.Question)
		}
	case gameChase:
		payload["chaser"] = out.ChaserName
		payload["category"] = out.Category
		payload["board_size"] = out.BoardSize
	}
	s.hub.Broadcast(code, event(evtGameStarted, payload))
	if out.Game == gameWhispers {
		word := event(evtYourWord, map[string]any{"word": out.Content.Word})
		s.hub.SendTo(out.Content.DrawerID, word)
		s.hub.SendTo(out.HostID, word)
	}
}

func (s *Server) handleDrawing(client *wsClient, evt clientEvent) {
	var out *DrawingOutcome
	room, ok := s.roomUpdate(client, evtSubmitDrawing, func(r *Room) error {
		var subErr error
		out, subErr = r.SubmitDrawing(client.sessionID, evt.Drawing)
		if subErr != nil {
			return subErr
		}
		s.scheduleRoundTimer(r)
		return nil
	})
	if !ok {
		return
	}
	s.broadcastDrawingOutcome(room, out)
}

func (s *Server) broadcastDrawingOutcome(room *Room, out *DrawingOutcome) {
	s.hub.Broadcast(room.Code, event(evtDrawingAdded, map[string]any{
		"player":       out.DrawerName,
		"chain_length": out.ChainLength,
	}))
	if out.GuessingBegun {
		s.hub.Broadcast(room.Code, event(evtGuessingStarted, map[string]any{
			"chain": out.Chain,
			"music": musicDrawing,
		}))
		return
	}
	if out.NextDrawerID != "" {
		s.hub.Broadcast(room.Code, event(evtNextDrawer, map[string]any{
			"player": out.NextDrawerName,
		}))
		s.hub.SendTo(out.NextDrawerID, event(evtYourTurn, map[string]any{
			"previous_drawing": out.PrevDrawing,
		}))
	}
}

func (s *Server) handleGuess(client *wsClient, evt clientEvent) {
	var out *GuessOutcome
	room, ok := s.roomUpdate(client, evtSubmitGuess, func(r *Room) error {
		var guessErr error
		out, guessErr = r.SubmitGuess(client.sessionID, evt.Guess)
		if guessErr != nil {
			return guessErr
		}
		if out.Round != nil && !out.Round.Finished {
			s.scheduleRoundTimer(r)
		}
		return nil
	})
	if !ok {
		return
	}
	if out.Duplicate {
		s.hub.Send(client, event(evtGuessResult, map[string]any{
			"player":    out.PlayerName,
			"duplicate": true,
		}))
		return
	}
	s.hub.Broadcast(room.Code, event(evtGuessResult, map[string]any{
		"player":    out.PlayerName,
		"correct":   out.Correct,
		"breakdown": out.Breakdown,
	}))
	if out.Round != nil {
		s.broadcastRoundOutcome(room, out.Round)
	}
}

func (s *Server) handleAnswer(client *wsClient, evt clientEvent) {
	var out *AnswerOutcome
	room, ok := s.roomUpdate(client, evtSubmitAnswer, func(r *Room) error {
		var ansErr error
		out, ansErr = r.SubmitAnswer(client.sessionID, evt.Answer)
		if ansErr != nil {
			return ansErr
		}
		if out.Round != nil && !out.Round.Finished {
			s.scheduleRoundTimer(r)
		}
		return nil
	})
	if !ok {
		return
	}
	if out.Duplicate {
		s.hub.Send(client, event(evtAnswerResult, map[string]any{
			"player":    out.PlayerName,
			"duplicate": true,
		}))
		return
	}
	// The full result stays private until the round resolves so slower
	// players do not see the correct answer early.
	s.hub.Send(client, event(evtAnswerResult, map[string]any{
		"player":         out.PlayerName,
		"correct":        out.Correct,
		"correct_answer": out.CorrectAnswer,
		"breakdown":      out.Breakdown,
	}))
	s.hub.Broadcast(room.Code, event(evtPlayerAnswered, map[string]any{
		"player": out.PlayerName,
	}))
	if out.Round != nil {
		s.broadcastRoundOutcome(room, out.Round)
	}
}

func (s *Server) handleSelectContestant(client *wsClient, evt clientEvent) {
	var out *ContestantOutcome
	room, ok := s.roomUpdate(client, evtSelectContestant, func(r *Room) error {
		var selErr error
		out, selErr = r.SelectContestant(client.sessionID, evt.ContestantID)
		if selErr != nil {
			return selErr
		}
		s.scheduleRoundTimer(r)
		return nil
	})
	if !ok {
		return
	}
	payload := map[string]any{
		"contestant": out.ContestantName,
		"chaser":     out.ChaserName,
		"category":   out.Category,
		"board_size": out.BoardSize,
		"position":   0,
	}
	s.hub.Broadcast(room.Code, event(evtChaseContestant, payload))
	if out.Question != nil {
		s.hub.Broadcast(room.Code, event(evtChaseQuestion, map[string]any{
			"question": chaseQuestionPayload(*out.Question),
			"position": 0,
		}))
	}
}

func (s *Server) handleChaseAnswer(client *wsClient, evt clientEvent) {
	var out *ChaseOutcome
	room, ok := s.roomUpdate(client, evtSubmitChaseAnswer, func(r *Room) error {
		var ansErr error
		out, ansErr = r.SubmitChaseAnswer(client.sessionID, evt.Answer, evt.UseDouble)
		if ansErr != nil {
			return ansErr
		}
		s.scheduleRoundTimer(r)
		return nil
	})
	if !ok {
		return
	}
	s.broadcastChaseOutcome(room, out)
}

func (s *Server) broadcastChaseOutcome(room *Room, out *ChaseOutcome) {
	payload := map[string]any{
		"player":          out.PlayerName,
		"player_type":     out.PlayerType,
		"correct":         out.Correct,
		"correct_answer":  out.CorrectAnswer,
		"position_change": out.PositionChange,
		"position":        out.Position,
	}
	if out.GameOver {
		payload["game_over"] = true
		payload["winner"] = out.Winner
		payload["win_bonus"] = out.WinBonus
	}
	s.hub.Broadcast(room.Code, event(evtChaseResult, payload))
	if out.NextQuestion != nil {
		s.hub.Broadcast(room.Code, event(evtChaseQuestion, map[string]any{
			"question": chaseQuestionPayload(*out.NextQuestion),
			"position": out.Position,
		}))
		return
	}
	if out.GameOver && out.Round == nil {
		s.hub.Broadcast(room.Code, event(evtChaseRoundOver, map[string]any{
			"winner":     out.Winner,
			"next_round": out.NextRound,
			"music":      musicRoundTransition,
		}))
	}
	if out.Round != nil {
		s.broadcastRoundOutcome(room, out.Round)
	}
}

func (s *Server) broadcastRoundOutcome(room *Room, out *RoundOutcome) {
	s.hub.Broadcast(room.Code, event(evtRoundComplete, map[string]any{
		"round":        out.Round,
		"reason":       out.Reason,
		"round_scores": out.RoundScores,
		"leaderboard":  out.Leaderboard,
		"music":        out.Music,
	}))
	if out.Final != nil {
		s.hub.Broadcast(room.Code, event(evtGameComplete, map[string]any{
			"game":        out.Final.Game,
			"winner":      out.Final.Winner,
			"results":     out.Final.Results,
			"leaderboard": out.Final.Leaderboard,
			"music":       musicGameOver,
		}))
		log.Printf("game complete room_id=%s game=%s winner=%s", room.Code, out.Final.Game, out.Final.Winner)
		s.persistGameResult(room.Code, out.Final)
		return
	}
	if out.Next == nil {
		return
	}
	next := out.Next
	payload := map[string]any{
		"round":      next.Round,
		"difficulty": next.Difficulty,
		"music":      musicRoundTransition,
	}
	if next.Question != nil {
		payload["question"] = questionPayload(*next.Question)
	}
	if next.DrawerID != "" {
		payload["current_drawer"] = next.DrawerName
		payload["turn_order"] = next.TurnOrder
	}
	s.hub.Broadcast(room.Code, event(evtRoundStarted, payload))
	s.recordEvent(room.Code, "round_advanced", EventPayload{
		RoomCode: room.Code,
		Round:    next.Round,
	})
	if next.Word != "" {
		word := event(evtYourWord, map[string]any{"word": next.Word})
		s.hub.SendTo(next.DrawerID, word)
		s.hub.SendTo(out.HostID, word)
	}
}
