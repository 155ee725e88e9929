package server

import (
	"encoding/base64"
	"log"
	"strings"

	"party-games/internal/db"
)

const highScoreThreshold = 1000
const veteranGames = 10

// ensureUser creates the durable user row for a joining player and stores
// their profile picture when one came with the join. Best effort: the room
// keeps working without a database.
func (s *Server) ensureUser(name, profile string) {
	if s.store == nil {
		return
	}
	if _, err := s.store.EnsureUser(name); err != nil {
		log.Printf("ensure user failed player=%s error=%v", name, err)
		return
	}
	if profile == "" {
		return
	}
	image, err := decodeProfileImage(profile)
	if err != nil {
		log.Printf("profile picture decode failed player=%s error=%v", name, err)
		return
	}
	if err := s.store.SaveProfilePicture(name, image); err != nil {
		log.Printf("profile picture save failed player=%s error=%v", name, err)
	}
}

func decodeProfileImage(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:") {
		if idx := strings.Index(data, ","); idx != -1 {
			data = data[idx+1:]
		}
	}
	return base64.StdEncoding.DecodeString(data)
}

func (s *Server) recordEvent(roomCode, eventType string, payload EventPayload) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordRoomEvent(roomCode, eventType, payload); err != nil {
		log.Printf("room event write failed room_id=%s event=%s error=%v", roomCode, eventType, err)
	}
}

// persistGameResult writes per-player scores, lifetime stats, and any newly
// earned achievements once a game finishes. Every write is independent so one
// failure never blocks the rest.
func (s *Server) persistGameResult(roomCode string, result *GameResult) {
	s.recordEvent(roomCode, "game_complete", EventPayload{
		RoomCode: roomCode,
		Game:     result.Game,
		Winner:   result.Winner,
		Count:    len(result.Results),
	})
	if s.store == nil {
		return
	}
	for _, res := range result.Results {
		user, err := s.store.EnsureUser(res.Name)
		if err != nil {
			log.Printf("game result skipped player=%s error=%v", res.Name, err)
			continue
		}
		priorGames := user.GamesPlayed

		if err := s.store.RecordGameResult(res.Name, result.Game, res.Score, res.Correct, result.TotalRounds); err != nil {
			log.Printf("game score write failed player=%s error=%v", res.Name, err)
		}
		if err := s.store.UpsertUserStats(res.Name, db.StatsDelta{
			GamesPlayed: 1,
			TotalScore:  res.Score,
			Score:       res.Score,
		}); err != nil {
			log.Printf("user stats write failed player=%s error=%v", res.Name, err)
		}

		s.award(res.Name, priorGames == 0, "first_game", "Played a first game")
		s.award(res.Name, res.Winner, "game_winner", "Won a game")
		s.award(res.Name, res.Score >= highScoreThreshold, "high_score", "Scored 1000 points in a single game")
		s.award(res.Name, res.PerfectRounds >= result.TotalRounds && res.PerfectRounds > 0,
			"perfect_game", "Finished a game without a single miss")
		s.award(res.Name, priorGames+1 >= veteranGames, "veteran", "Played 10 games")
	}
}

func (s *Server) award(username string, earned bool, name, description string) {
	if !earned || s.store == nil {
		return
	}
	if err := s.store.AwardAchievement(username, name, description); err != nil {
		log.Printf("achievement write failed player=%s achievement=%s error=%v", username, name, err)
	}
}
