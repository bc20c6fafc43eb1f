package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate aplica en orden los .sql embebidos que aún no figuren en schema_migrations.
// Cada archivo corre en su propia transacción junto con su registro.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	files, err := migrationFiles(migrationFS)
	if err != nil {
		return err
	}
	for _, fname := range files {
		version := strings.TrimSuffix(fname, path.Ext(fname))

		var applied bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %s: %w", version, err)
		}
		if applied {
			continue
		}

		b, err := fs.ReadFile(migrationFS, path.Join("migrations", fname))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fname, err)
		}
		err = withTx(ctx, q, func(tx Querier) error {
			if _, err := tx.Exec(ctx, string(b)); err != nil {
				return fmt.Errorf("exec migration %s: %w", fname, err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
				return fmt.Errorf("record migration %s: %w", fname, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Info().Str("version", version).Msg("migración aplicada")
	}
	return nil
}

// migrationFiles nombres .sql del directorio migrations, ordenados.
func migrationFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
