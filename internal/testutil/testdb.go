package testutil

import (
	"database/sql"
	"testing"

	"github.com/rgaitan/wotrack/internal/db"
)

// NewTestDB opens a fully migrated in-memory SQLite database and registers
// its cleanup on the test. Every test gets an isolated catalog and event log.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW wraps the test database in a UnitOfWork for service-level tests.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
