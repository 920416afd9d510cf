package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"mcq-generator/internal/logger"

	_ "github.com/sijms/go-ora/v2" // Ensure go-ora driver is registered
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Oracle errors raised when an object created by a migration already exists.
var alreadyAppliedCodes = []string{"ORA-00955", "ORA-01408"}

// RunMigrations executes every *.up.sql file in name order. Each file holds a
// single statement. Statements whose objects already exist are skipped.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return run(ctx, db, ".up.sql", false)
}

// RollbackMigrations executes every *.down.sql file in reverse name order.
func RollbackMigrations(ctx context.Context, db *sql.DB) error {
	return run(ctx, db, ".down.sql", true)
}

func run(ctx context.Context, db *sql.DB, suffix string, reverse bool) error {
	l := logger.Get()

	names, err := migrationNames(suffix)
	if err != nil {
		return err
	}
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	}

	for _, name := range names {
		content, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		stmt := strings.TrimSuffix(strings.TrimSpace(string(content)), ";")
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if isAlreadyApplied(err) {
				l.Info("Migration already applied", zap.String("file", name))
				continue
			}
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}
		l.Info("Executed migration", zap.String("file", name))
	}

	l.Info("Migrations completed successfully", zap.Int("files", len(names)))
	return nil
}

func migrationNames(suffix string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func isAlreadyApplied(err error) bool {
	msg := err.Error()
	for _, code := range alreadyAppliedCodes {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return false
}

// NewMigrateOracleDB opens a plain database/sql handle for migrations.
func NewMigrateOracleDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	return db, nil
}
