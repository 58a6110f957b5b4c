package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hongminglow/labubu-portal/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.KV interface at compile time.
var _ storage.KV = (*Store)(nil)

// Store provides Postgres-backed persistence for session entries.
type Store struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewKVStore creates a new Store and runs migrations.
// Entries not read or written for longer than ttl are treated as absent.
func NewKVStore(ctx context.Context, databaseURL string, ttl time.Duration) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool, ttl: ttl}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS session_entries (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (namespace, key)
		);`,
		`CREATE INDEX IF NOT EXISTS session_entries_updated_at_idx ON session_entries (updated_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", describe(err))
		}
	}
	return nil
}

// Get fetches a live entry and refreshes its timestamp, so expiry counts from last use.
func (s *Store) Get(ctx context.Context, namespace, key string) (string, error) {
	const query = `
	UPDATE session_entries
	SET updated_at = NOW()
	WHERE namespace = $1 AND key = $2 AND updated_at > $3
	RETURNING value;
	`
	var value string
	err := s.pool.QueryRow(ctx, query, namespace, key, time.Now().Add(-s.ttl)).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("get session entry: %w", describe(err))
	}
	return value, nil
}

// Set upserts an entry and refreshes its timestamp.
func (s *Store) Set(ctx context.Context, namespace, key, value string) error {
	const query = `
	INSERT INTO session_entries (namespace, key, value, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
	`
	if _, err := s.pool.Exec(ctx, query, namespace, key, value); err != nil {
		return fmt.Errorf("set session entry: %w", describe(err))
	}
	return nil
}

// Delete removes the listed keys of a namespace.
func (s *Store) Delete(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	const query = `DELETE FROM session_entries WHERE namespace = $1 AND key = ANY($2);`
	if _, err := s.pool.Exec(ctx, query, namespace, keys); err != nil {
		return fmt.Errorf("delete session entries: %w", describe(err))
	}
	return nil
}

// PurgeExpired drops entries older than the ttl and reports how many were removed.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM session_entries WHERE updated_at <= $1;`, time.Now().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("purge session entries: %w", describe(err))
	}
	return tag.RowsAffected(), nil
}

func describe(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres %s: %w", pgErr.Code, err)
	}
	return err
}
