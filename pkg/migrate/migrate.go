package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pressly/goose/v3"
)

const DefaultDir = "pkg/migrate/migrations"

// Run executes a standard goose command that requires a DB connection.
func Run(ctx context.Context, db *sql.DB, dir string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	// RunContext prints status output to stdout (goose internal)
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

const sqlMigrationTemplate = `-- +goose Up
-- +goose StatementBegin
SELECT 'up SQL query';
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
SELECT 'down SQL query';
-- +goose StatementEnd
`

// CreateSQLMigration writes a timestamped goose SQL migration skeleton and
// returns its path.
func CreateSQLMigration(dir, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	if name == "" {
		return "", fmt.Errorf("name is required")
	}

	filename := fmt.Sprintf("%s_%s.sql", time.Now().UTC().Format("20060102150405"), name)
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(sqlMigrationTemplate), 0o644); err != nil {
		return "", fmt.Errorf("write migration skeleton: %w", err)
	}
	return path, nil
}

// ValidateDir checks that every migration in dir parses and carries a valid
// version prefix.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	if _, err := goose.CollectMigrations(dir, 0, goose.MaxVersion); err != nil {
		return fmt.Errorf("collect migrations: %w", err)
	}
	return nil
}

// MigrateToVersion migrates up to the given goose version.
func MigrateToVersion(ctx context.Context, db *sql.DB, dir, version string) error {
	target, err := strconv.ParseInt(version, 10, 64)
	if err != nil {
		return fmt.Errorf("parse target version: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpToContext(ctx, db, dir, target); err != nil {
		return fmt.Errorf("goose up-to %d: %w", target, err)
	}
	return nil
}
