// Package bundbtest provides migrated in-memory databases for tests.
package bundbtest

import (
	"context"
	"testing"

	"github.com/Black-And-White-Club/scrim-bot/config"
	"github.com/Black-And-White-Club/scrim-bot/db/bundb"
	"github.com/uptrace/bun"
)

// NewSQLite returns a migrated in-memory SQLite database closed at test cleanup.
func NewSQLite(t testing.TB) *bun.DB {
	t.Helper()
	ctx := context.Background()

	db, err := bundb.Open(ctx, config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := bundb.MigrateAll(ctx, db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
