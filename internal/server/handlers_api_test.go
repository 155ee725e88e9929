package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"party-games/internal/config"

	"github.com/gin-gonic/gin"
)

func doGET(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("GET %s: bad body %q: %v", path, rec.Body.String(), err)
	}
	return rec, body
}

func TestAPIHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(nil, config.Default())
	rec, body := doGET(t, srv.Router(), "/healthz")
	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("healthz: %d %v", rec.Code, body)
	}
}

func TestAPIRoomSummaryRedactsWord(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(nil, config.Default())
	room := srv.registry.GetOrCreate("API1")
	if _, err := room.Join("host", "", true, ""); err != nil {
		t.Fatalf("host join: %v", err)
	}
	if _, err := room.Join("p1", "Ada", false, ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := room.Join("p2", "Ben", false, ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := room.StartGame("host", gameWhispers, ""); err != nil {
		t.Fatalf("start: %v", err)
	}

	rec, body := doGET(t, srv.Router(), "/api/rooms/api1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["room_code"] != "API1" || body["game"] != gameWhispers {
		t.Fatalf("summary: %v", body)
	}
	if _, leaked := body["word"]; leaked {
		t.Fatalf("spectator view leaks the word: %v", body)
	}
}

func TestAPIRoomSummaryNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(nil, config.Default())
	rec, _ := doGET(t, srv.Router(), "/api/rooms/NOPE")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	rec, _ = doGET(t, srv.Router(), "/api/rooms/bad%20code")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAPIListRooms(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(nil, config.Default())
	srv.registry.GetOrCreate("API2")
	_, body := doGET(t, srv.Router(), "/api/rooms")
	rooms, ok := body["rooms"].([]any)
	if !ok || len(rooms) != 1 {
		t.Fatalf("rooms: %v", body)
	}
}

func TestAPILeaderboardValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(nil, config.Default())
	rec, _ := doGET(t, srv.Router(), "/api/leaderboard/solitaire")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown game: status = %d, want 400", rec.Code)
	}
	rec, _ = doGET(t, srv.Router(), "/api/leaderboard/trivia")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("no store: status = %d, want 503", rec.Code)
	}
}

func TestAPIChaseCategories(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(nil, config.Default())
	rec, body := doGET(t, srv.Router(), "/api/chase/categories")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	categories, ok := body["categories"].([]any)
	if !ok || len(categories) == 0 {
		t.Fatalf("categories: %v", body)
	}
}
