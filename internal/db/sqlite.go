package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLite returns a connected GORM DB instance backed by the given file.
func NewSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	return db, nil
}

// SchemaReady reports whether the forum tables exist. The server refuses
// to start against an uninitialized database; cmd/initdb creates the schema.
func SchemaReady(db *gorm.DB) bool {
	m := db.Migrator()
	for _, table := range []string{"users", "posts", "comments", "comment_likes"} {
		if !m.HasTable(table) {
			return false
		}
	}
	return true
}
