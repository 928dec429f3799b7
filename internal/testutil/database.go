// Package testutil holds shared helpers for tests that need a real database.
package testutil

import (
	"testing"

	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/database/migrations"
)

// NewTestStore creates an in-memory SQLite store with all migrations applied, using a
// stub clock and sequential ids. The database is closed when the test completes.
func NewTestStore(t *testing.T) *database.Store {
	t.Helper()

	db, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.MigrateUp(db); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	return database.NewStore(db, NewStubClock(), &SequentialIDs{})
}
