package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsClient is one websocket connection. Writes go through mu so broadcasts
// from timers and other sessions never interleave frames.
type wsClient struct {
	mu        sync.Mutex
	conn      *websocket.Conn
	sessionID string
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// wsHub tracks every live connection by session ID and by room membership.
// Room membership here is transport fan-out only; the Room itself stays the
// source of truth for game state.
type wsHub struct {
	mu       sync.Mutex
	sessions map[string]*wsClient
	rooms    map[string]map[string]*wsClient
	memberOf map[string]string
}

func newWSHub() *wsHub {
	return &wsHub{
		sessions: make(map[string]*wsClient),
		rooms:    make(map[string]map[string]*wsClient),
		memberOf: make(map[string]string),
	}
}

func (h *wsHub) Register(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[client.sessionID] = client
}

func (h *wsHub) JoinRoom(sessionID, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if prev, ok := h.memberOf[sessionID]; ok && prev != code {
		h.leaveLocked(sessionID, prev)
	}
	group := h.rooms[code]
	if group == nil {
		group = make(map[string]*wsClient)
		h.rooms[code] = group
	}
	if client, ok := h.sessions[sessionID]; ok {
		group[sessionID] = client
		h.memberOf[sessionID] = code
	}
}

func (h *wsHub) LeaveRoom(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if code, ok := h.memberOf[sessionID]; ok {
		h.leaveLocked(sessionID, code)
	}
}

func (h *wsHub) leaveLocked(sessionID, code string) {
	delete(h.memberOf, sessionID)
	if group := h.rooms[code]; group != nil {
		delete(group, sessionID)
		if len(group) == 0 {
			delete(h.rooms, code)
		}
	}
}

// Remove drops the connection entirely and reports the room it was in.
func (h *wsHub) Remove(sessionID string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	code := h.memberOf[sessionID]
	if code != "" {
		h.leaveLocked(sessionID, code)
	}
	if client, ok := h.sessions[sessionID]; ok {
		delete(h.sessions, sessionID)
		_ = client.conn.Close()
	}
	return code
}

func (h *wsHub) RoomOf(sessionID string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.memberOf[sessionID]
}

func (h *wsHub) Send(client *wsClient, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = client.write(data)
}

func (h *wsHub) SendTo(sessionID string, payload any) {
	h.mu.Lock()
	client, ok := h.sessions[sessionID]
	h.mu.Unlock()
	if ok {
		h.Send(client, payload)
	}
}

func (h *wsHub) Broadcast(code string, payload any) {
	h.mu.Lock()
	group := h.rooms[code]
	clients := make([]*wsClient, 0, len(group))
	for _, client := range group {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, client := range clients {
		if err := client.write(data); err != nil {
			h.Remove(client.sessionID)
		}
	}
}

// CloseRoom notifies every member, then drops and closes their connections.
func (h *wsHub) CloseRoom(code string, payload any) {
	h.Broadcast(code, payload)
	h.mu.Lock()
	group := h.rooms[code]
	ids := make([]string, 0, len(group))
	for id := range group {
		ids = append(ids, id)
	}
	h.mu.Unlock()
	for _, id := range ids {
		h.Remove(id)
	}
}

func (s *Server) handleWebsocket(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := &wsClient{
		conn:      conn,
		sessionID: uuid.NewString(),
	}
	s.hub.Register(client)
	log.Printf("ws connected session_id=%s remote=%s", client.sessionID, c.Request.RemoteAddr)
	s.hub.Send(client, event(evtConnected, map[string]any{
		"session_id": client.sessionID,
	}))
	go s.readWS(client)
}

func (s *Server) readWS(client *wsClient) {
	defer s.disconnectClient(client)
	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected session_id=%s error=%v", client.sessionID, err)
			return
		}
		var evt clientEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			s.hub.Send(client, rejection("", validationError("malformed message")))
			continue
		}
		s.dispatch(client, evt)
	}
}

// dispatch routes one inbound event. The recover boundary turns a panic in a
// handler into a rejected action for that client instead of a dead room, and
// the room lock is already released by then so the room stays usable.
func (s *Server) dispatch(client *wsClient, evt clientEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("ws handler panic session_id=%s event=%s panic=%v", client.sessionID, evt.Type, rec)
			s.hub.Send(client, rejection(evt.Type, stateConflict("internal error")))
		}
	}()
	switch evt.Type {
	case evtJoinRoom:
		s.handleJoin(client, evt)
	case evtLeaveRoom:
		s.handleLeave(client)
	case evtStartGame:
		s.handleStart(client, evt)
	case evtSubmitDrawing:
		s.handleDrawing(client, evt)
	case evtSubmitGuess:
		s.handleGuess(client, evt)
	case evtSubmitAnswer:
		s.handleAnswer(client, evt)
	case evtSelectContestant:
		s.handleSelectContestant(client, evt)
	case evtSubmitChaseAnswer:
		s.handleChaseAnswer(client, evt)
	case evtCancelRoom:
		s.handleCancelRoom(client)
	default:
		s.hub.Send(client, rejection(evt.Type, validationError("unknown event type")))
	}
}

// roomUpdate runs fn against the client's current room under its lock. A
// vanished room means a sweep got there first, which the client sees as
// room_expired rather than a generic rejection.
func (s *Server) roomUpdate(client *wsClient, action string, fn func(room *Room) error) (*Room, bool) {
	code := s.hub.RoomOf(client.sessionID)
	if code == "" {
		s.hub.Send(client, rejection(action, stateConflict("join a room first")))
		return nil, false
	}
	room, err := s.registry.Update(code, fn)
	if errors.Is(err, errRoomNotFound) {
		s.hub.LeaveRoom(client.sessionID)
		s.hub.Send(client, event(evtRoomExpired, map[string]any{
			"room_code": code,
			"message":   "room expired due to inactivity",
		}))
		return nil, false
	}
	if err != nil {
		s.hub.Send(client, rejection(action, err))
		return nil, false
	}
	return room, true
}

func rejection(action string, err error) map[string]any {
	message := err.Error()
	var roomErr *RoomError
	if errors.As(err, &roomErr) {
		message = roomErr.Message
	}
	return event(evtActionRejected, map[string]any{
		"action":  action,
		"code":    errorCode(err),
		"message": message,
	})
}
