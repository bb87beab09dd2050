package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrator is the subset of a pgx pool or connection needed to apply migrations.
type Migrator interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

func upMigrations(fsys fs.FS) ([]string, error) {
	files, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var ups []string
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".up.sql") {
			ups = append(ups, file.Name())
		}
	}
	sort.Strings(ups)

	return ups, nil
}

func Migrate(ctx context.Context, db Migrator, log *zap.Logger) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	migrations, err := upMigrations(migrationFiles)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		var exists bool
		err := db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
			migration,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", migration, err)
		}

		if exists {
			log.Debug("migration already applied", zap.String("version", migration))
			continue
		}

		if err := apply(ctx, db, migration); err != nil {
			return err
		}

		log.Info("migration applied", zap.String("version", migration))
	}

	return nil
}

func apply(ctx context.Context, db Migrator, migration string) error {
	sqlBytes, err := migrationFiles.ReadFile("migrations/" + migration)
	if err != nil {
		return fmt.Errorf("failed to read sql file %s: %w", migration, err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", migration, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("failed to complete sql file %s: %w", migration, err)
	}

	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", migration); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration, err)
	}

	return tx.Commit(ctx)
}
