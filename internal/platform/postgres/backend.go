package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/tasks-api/internal/store"
)

// DefaultCollection is the row name used when none is configured.
const DefaultCollection = "default"

// Backend keeps the serialized collection in the body column of one
// task_collections row. Each write is a single upsert statement.
type Backend struct {
	db     *sql.DB
	name   string
	logger *slog.Logger
}

// Compile-time check that Backend implements store.Backend
var _ store.Backend = (*Backend)(nil)

// NewBackend creates a Backend for the named collection row.
// If logger is nil, a default logger is used.
func NewBackend(db *sql.DB, name string, logger *slog.Logger) *Backend {
	if name == "" {
		name = DefaultCollection
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		db:     db,
		name:   name,
		logger: logger.With(slog.String("component", "postgres_backend")),
	}
}

// Open opens a pgx-backed *sql.DB and verifies it with a ping.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// The collection is one row; a small pool is plenty.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Read implements store.Backend.Read. A missing row is inserted holding an
// empty collection.
func (b *Backend) Read(ctx context.Context) ([]byte, error) {
	var body string
	err := b.db.QueryRowContext(ctx,
		`SELECT body FROM task_collections WHERE name = $1`, b.name).Scan(&body)
	if err == nil {
		return []byte(body), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, MapReadError(err)
	}

	_, err = b.db.ExecContext(ctx,
		`INSERT INTO task_collections (name, body) VALUES ($1, '[]') ON CONFLICT (name) DO NOTHING`,
		b.name)
	if err != nil {
		b.logger.WarnContext(ctx, "could not create empty task collection row",
			slog.String("collection", b.name),
			slog.String("error", err.Error()))
	} else {
		b.logger.InfoContext(ctx, "created empty task collection row", slog.String("collection", b.name))
	}
	return nil, nil
}

// Write implements store.Backend.Write.
func (b *Backend) Write(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO task_collections (name, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		b.name, string(data))
	if err != nil {
		return MapWriteError(err)
	}
	return nil
}
