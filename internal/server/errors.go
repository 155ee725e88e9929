package server

import "errors"

// Error codes carried back to the acting session on a rejected action.
const (
	codeValidation    = "validation"
	codeNameTaken     = "name_taken"
	codeNotHost       = "not_host"
	codeInsufficient  = "insufficient_players"
	codeStateConflict = "state_conflict"
	codeNotFound      = "not_found"
	codeRoomExpired   = "room_expired"
)

// RoomError is a rejected room action. Rejections never mutate room state and
// are reported only to the acting session.
type RoomError struct {
	Code    string
	Message string
}

func (e *RoomError) Error() string {
	return e.Message
}

var (
	errRoomNotFound   = &RoomError{Code: codeNotFound, Message: "room not found"}
	errPlayerNotFound = &RoomError{Code: codeNotFound, Message: "player not found in room"}
	errNameTaken      = &RoomError{Code: codeNameTaken, Message: "username already taken"}
	errNotHost        = &RoomError{Code: codeNotHost, Message: "only the host can do that"}
	errNotEnough      = &RoomError{Code: codeInsufficient, Message: "not enough players"}
)

func stateConflict(message string) *RoomError {
	return &RoomError{Code: codeStateConflict, Message: message}
}

func validationError(message string) *RoomError {
	return &RoomError{Code: codeValidation, Message: message}
}

// errorCode extracts the wire code from any error; unexpected internal faults
// surface as state conflicts so the rest of the room is unaffected.
func errorCode(err error) string {
	var roomErr *RoomError
	if errors.As(err, &roomErr) {
		return roomErr.Code
	}
	return codeStateConflict
}
