package pg

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gomart/gomart/internal/observability/logger"
)

// Migrate aplica en orden los *_up.sql del filesystem embebido que no
// figuren todavía en schema_migrations. Idempotente.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) error {
	log := logger.Named("pg.migrate")

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    text PRIMARY KEY,
			applied_on timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("pg: schema_migrations: %w", err)
	}

	files, err := listMigrations(fsys, "_up.sql")
	if err != nil {
		return err
	}

	for _, name := range files {
		version := strings.TrimSuffix(name, "_up.sql")

		var applied bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("pg: check %s: %w", version, err)
		}
		if applied {
			continue
		}

		sql, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("pg: read %s: %w", name, err)
		}

		start := time.Now()
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("pg: exec %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT DO NOTHING`, version,
		); err != nil {
			return fmt.Errorf("pg: record %s: %w", version, err)
		}
		log.Info("migration applied",
			logger.String("version", version),
			logger.Duration(time.Since(start)),
		)
	}
	return nil
}

// MigrateDown aplica los *_down.sql en orden inverso (steps=0 aplica todos).
func MigrateDown(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, steps int) error {
	log := logger.Named("pg.migrate")

	files, err := listMigrations(fsys, "_down.sql")
	if err != nil {
		return err
	}
	// orden inverso: deshacer lo más nuevo primero
	for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
		files[i], files[j] = files[j], files[i]
	}
	if steps > 0 && steps < len(files) {
		files = files[:steps]
	}

	for _, name := range files {
		version := strings.TrimSuffix(name, "_down.sql")

		sql, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("pg: read %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("pg: exec %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx,
			`DELETE FROM schema_migrations WHERE version = $1`, version,
		); err != nil {
			return fmt.Errorf("pg: unrecord %s: %w", version, err)
		}
		log.Info("migration reverted", logger.String("version", version))
	}
	return nil
}

func listMigrations(fsys fs.FS, suffix string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("pg: list migrations: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
