package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const migrationsDir = "db/migrations"

func main() {
	name := flag.String("name", "", "migration name, e.g. add_room_events")
	flag.Parse()

	if *name == "" {
		log.Fatal("migration name is required")
	}
	if strings.ContainsAny(*name, " \t") {
		log.Fatal("migration name must not contain whitespace")
	}

	version := time.Now().UTC().Format("20060102150405")
	base := fmt.Sprintf("%s_%s", version, *name)

	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		log.Fatalf("create migrations dir: %v", err)
	}
	upPath := filepath.Join(migrationsDir, base+".up.sql")
	downPath := filepath.Join(migrationsDir, base+".down.sql")

	if err := writeNew(upPath, "BEGIN;\n\n-- up migration\n\nCOMMIT;\n"); err != nil {
		log.Fatalf("create up migration: %v", err)
	}
	if err := writeNew(downPath, "BEGIN;\n\n-- down migration\n\nCOMMIT;\n"); err != nil {
		log.Fatalf("create down migration: %v", err)
	}
	log.Printf("created %s and %s", upPath, downPath)
}

func writeNew(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
