// Package testutil provides shared helpers for tests that need a database.
package testutil

import (
	"testing"

	"gorm.io/gorm"

	"usertags/backend/internal/config"
	"usertags/backend/internal/database"
	"usertags/backend/internal/logger"
)

// NewDB opens a private in-memory sqlite database with the tagging schema
// and any extra models migrated. It is closed when the test completes.
func NewDB(t *testing.T, extra ...any) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseURL:    "file::memory:",
	}

	db, err := database.Open(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	if err := database.Migrate(db, extra...); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}
