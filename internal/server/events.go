package server

// Inbound event types.
const (
	evtJoinRoom          = "join_room"
	evtLeaveRoom         = "leave_room"
	evtStartGame         = "start_game"
	evtSubmitDrawing     = "submit_drawing"
	evtSubmitGuess       = "submit_guess"
	evtSubmitAnswer      = "submit_answer"
	evtSelectContestant  = "select_contestant"
	evtSubmitChaseAnswer = "submit_chase_answer"
	evtCancelRoom        = "cancel_room"
)

// Outbound event types.
const (
	evtConnected        = "connected"
	evtJoinConfirmed    = "join_confirmed"
	evtPlayerJoined     = "player_joined"
	evtPlayerLeft       = "player_left"
	evtHostReplaced     = "host_replaced"
	evtGameStarted      = "game_started"
	evtYourWord         = "your_word"
	evtYourTurn         = "your_turn"
	evtNextDrawer       = "next_drawer"
	evtPlayerAnswered   = "player_answered"
	evtDrawingAdded     = "drawing_added"
	evtGuessingStarted  = "guessing_started"
	evtGuessResult      = "guess_result"
	evtAnswerResult     = "answer_result"
	evtRoundComplete    = "round_complete"
	evtRoundStarted     = "round_started"
	evtGameComplete     = "game_complete"
	evtGameCancelled    = "game_cancelled"
	evtChaseContestant  = "chase_contestant_selected"
	evtChaseQuestion    = "chase_question"
	evtChaseResult      = "chase_answer_result"
	evtChaseRoundOver   = "chase_round_over"
	evtChaseInterrupted = "chase_interrupted"
	evtRoomState        = "room_state"
	evtActionRejected   = "action_rejected"
	evtRoomExpired      = "room_expired"
	evtRoomClosed       = "room_closed"
)

// clientEvent is the single inbound message shape. Fields beyond Type are
// read per event type and ignored otherwise.
type clientEvent struct {
	Type         string `json:"type"`
	RoomCode     string `json:"room_code,omitempty"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	Profile      string `json:"profile_picture,omitempty"`
	Game         string `json:"game,omitempty"`
	Category     string `json:"category,omitempty"`
	Drawing      string `json:"drawing,omitempty"`
	Guess        string `json:"guess,omitempty"`
	Answer       string `json:"answer,omitempty"`
	ContestantID string `json:"contestant_id,omitempty"`
	UseDouble    bool   `json:"use_double_step,omitempty"`
}

// EventPayload is the jsonb body written to the room event log.
type EventPayload struct {
	RoomCode   string `json:"room_code,omitempty"`
	PlayerName string `json:"player,omitempty"`
	Game       string `json:"game,omitempty"`
	Round      int    `json:"round,omitempty"`
	State      string `json:"state,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Winner     string `json:"winner,omitempty"`
	Count      int    `json:"count,omitempty"`
}

func event(kind string, fields map[string]any) map[string]any {
	payload := map[string]any{"type": kind}
	for k, v := range fields {
		payload[k] = v
	}
	return payload
}
