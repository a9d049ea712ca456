package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	docsysRepo "fitconsole/internal/domain/repositories/docsystem"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store implements docsystem.Backend on PostgreSQL.
type Store struct {
	db     DB
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

var _ docsysRepo.Backend = (*Store)(nil)

// NewStore creates a store over a pool (or anything with the same methods).
func NewStore(db DB, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logger.With("backend", "postgres"),
	}
}

// Migrate applies pending schema migrations. goose needs database/sql, so
// this opens its own short-lived connection through the pgx stdlib driver.
func Migrate(ctx context.Context, databaseURL string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration_ms", r.Duration.Milliseconds(),
		)
	}
	return nil
}
