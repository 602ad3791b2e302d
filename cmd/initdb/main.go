package main

import (
	"log"

	"community/internal/config"
	"community/internal/db"
	"community/internal/model"
)

// One-shot schema initializer. The server refuses to start until this
// has been run against the configured database file.
func main() {
	cfg := config.Load()

	gormDB, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.CommentLike{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	log.Printf("initialized %s", cfg.DBPath)
}
