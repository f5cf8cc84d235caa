// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"

	"nexora-chat/config"
	"nexora-chat/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory SQLite database with the production
// schema applied. It is closed when the test finishes.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		AppMode:     "test",
		DBDriver:    config.DriverSQLite,
		DatabaseURL: fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
