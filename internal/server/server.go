package server

import (
	"time"

	"party-games/internal/config"
	"party-games/internal/db"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	registry *Registry
	hub      *wsHub
	store    *db.Store
	cfg      config.Config
	stop     chan struct{}
}

// New wires a server. store may be nil, in which case rooms run fully
// in-memory and nothing is persisted.
func New(store *db.Store, cfg config.Config) *Server {
	return &Server{
		registry: NewRegistry(cfg),
		hub:      newWSHub(),
		store:    store,
		cfg:      cfg,
		stop:     make(chan struct{}),
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}
	if len(s.cfg.AllowedOrigins) == 1 && s.cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.cfg.AllowedOrigins
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", s.handleHealth)
	router.GET("/ws", s.handleWebsocket)

	api := router.Group("/api")
	api.GET("/rooms", s.handleListRooms)
	api.GET("/rooms/:code", s.handleRoomSummary)
	api.GET("/leaderboard/:game", s.handleLeaderboard)
	api.GET("/users/:username", s.handleUserProfile)
	api.GET("/chase/categories", s.handleChaseCategories)
	return router
}

// StartSweeper begins periodic removal of rooms that have been empty past the
// grace period. Swept rooms get a final room_expired frame before their
// connections close.
func (s *Server) StartSweeper() {
	interval := time.Duration(s.cfg.SweepIntervalSecs) * time.Second
	grace := time.Duration(s.cfg.SweepGraceSeconds) * time.Second
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				for _, code := range s.registry.Sweep(grace) {
					s.hub.CloseRoom(code, event(evtRoomExpired, map[string]any{
						"room_code": code,
						"message":   "room expired due to inactivity",
					}))
					s.recordEvent(code, "room_expired", EventPayload{RoomCode: code})
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Server) Close() {
	close(s.stop)
}
