// Package bundb opens the bun database for the configured driver and runs the
// module migrations.
package bundb

import (
	"context"
	"database/sql"
	"fmt"

	resultsmigrations "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/repositories/migrations"
	scrimmigrations "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/scrim-bot/config"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// Open connects to the database described by cfg and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*bun.DB, error) {
	var db *bun.DB
	switch cfg.Driver {
	case config.DriverPostgres, "":
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
		db = bun.NewDB(sqldb, pgdialect.New())
	case config.DriverSQLite:
		sqldb, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// go-sqlite3 serialises writers; one connection avoids SQLITE_BUSY.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrators returns one migrator per module, each with its own bookkeeping tables.
func Migrators(db *bun.DB) map[string]*migrate.Migrator {
	modules := map[string]*migrate.Migrations{
		"scrim":   scrimmigrations.Migrations,
		"results": resultsmigrations.Migrations,
	}
	migrators := make(map[string]*migrate.Migrator, len(modules))
	for name, migrations := range modules {
		migrators[name] = migrate.NewMigrator(db, migrations,
			migrate.WithTableName("bun_migrations_"+name),
			migrate.WithLocksTableName("bun_migration_locks_"+name),
		)
	}
	return migrators
}

// MigrationOrder lists modules in the order their migrations must run.
var MigrationOrder = []string{"scrim", "results"}

// MigrateAll initializes and applies every module's migrations.
func MigrateAll(ctx context.Context, db *bun.DB) error {
	migrators := Migrators(db)
	for _, name := range MigrationOrder {
		m := migrators[name]
		if err := m.Init(ctx); err != nil {
			return fmt.Errorf("init %s migrations: %w", name, err)
		}
		if _, err := m.Migrate(ctx); err != nil {
			return fmt.Errorf("run %s migrations: %w", name, err)
		}
	}
	return nil
}
