package main

import (
	"log"

	"party-games/internal/config"
	"party-games/internal/db"
	"party-games/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	var store *db.Store
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
		store = db.NewStore(conn)
	} else {
		log.Println("DATABASE_URL not set, running without persistence")
	}

	srv := server.New(store, cfg)
	srv.StartSweeper()

	log.Printf("party-games server listening on %s", cfg.Addr)
	if err := srv.Router().Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
