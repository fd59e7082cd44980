package database

import (
	"embed"
	"fmt"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

// Migrate creates the net_schedule and roster_members tables. Runs never call
// it; it is used by the migrate command when a schedule database is set up.
func Migrate(db *DB) error {
	var (
		dialect darwin.Dialect
		dir     string
	)
	switch db.driver {
	case DriverPostgres:
		dialect, dir = darwin.PostgresDialect{}, "migrations/postgres"
	case DriverSQLite:
		dialect, dir = darwin.SqliteDialect{}, "migrations/sqlite"
	default:
		return fmt.Errorf("no migrations for driver %q", db.driver)
	}

	migrator := sqlmigrator.New(db.conn, dialect)
	if err := migrator.Migrate(migrationFiles, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
