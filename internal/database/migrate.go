package database

import (
    "context"
    "database/sql"
    "embed"
    "fmt"

    "github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies all pending schema migrations embedded in the
// binary.  The schema carries the unique keys that back the
// no-double-booking invariants, so the service refuses to start
// when migrations cannot be applied.
func Migrate(ctx context.Context, db *sql.DB) error {
    goose.SetBaseFS(migrations)
    if err := goose.SetDialect("mysql"); err != nil {
        return fmt.Errorf("set goose dialect: %w", err)
    }
    if err := goose.UpContext(ctx, db, "migrations"); err != nil {
        return fmt.Errorf("apply migrations: %w", err)
    }
    return nil
}

// MigrationVersion reports the current schema version.
func MigrationVersion(ctx context.Context, db *sql.DB) (int64, error) {
    version, err := goose.GetDBVersionContext(ctx, db)
    if err != nil {
        return 0, fmt.Errorf("get version: %w", err)
    }
    return version, nil
}
