package server

import (
	"net/http"

	"party-games/internal/content"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rooms":  len(s.registry.Codes()),
	})
}

func (s *Server) handleListRooms(c *gin.Context) {
	summaries := make([]gin.H, 0)
	for _, code := range s.registry.Codes() {
		_, err := s.registry.Update(code, func(r *Room) error {
			summaries = append(summaries, gin.H{
				"room_code": r.Code,
				"state":     r.State,
				"game":      r.Game,
				"round":     r.Round,
				"players":   r.connectedCount(),
			})
			return nil
		})
		if err != nil {
			continue
		}
	}
	c.JSON(http.StatusOK, gin.H{"rooms": summaries})
}

// handleRoomSummary returns the spectator view of a room. The empty viewer
// session means every secret stays redacted.
func (s *Server) handleRoomSummary(c *gin.Context) {
	code, err := validateRoomCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var snap map[string]any
	_, err = s.registry.Update(code, func(r *Room) error {
		snap = r.snapshotFor("")
		return nil
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	delete(snap, "type")
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	game := c.Param("game")
	switch game {
	case gameWhispers, gameTrivia, gameChase:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown game kind"})
		return
	}
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence disabled"})
		return
	}
	rows, err := s.store.TopScores(game)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game, "scores": rows})
}

func (s *Server) handleUserProfile(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence disabled"})
		return
	}
	username, err := validateName(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, achievements, err := s.store.UserProfile(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	earned := make([]gin.H, 0, len(achievements))
	for _, a := range achievements {
		earned = append(earned, gin.H{
			"name":        a.Name,
			"description": a.Description,
			"unlocked_at": a.UnlockedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"username":      user.Username,
		"games_played":  user.GamesPlayed,
		"total_score":   user.TotalScore,
		"highest_score": user.HighestScore,
		"achievements":  earned,
	})
}

func (s *Server) handleChaseCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": content.ChaseCategories()})
}
