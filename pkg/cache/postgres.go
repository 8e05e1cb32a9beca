package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps cache entries in Postgres so responses survive
// restarts and can be shared by replicas.
type PostgresStore struct {
	DB *pgxpool.Pool
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS response_cache (
    key        TEXT PRIMARY KEY,
    value      BYTEA NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewPostgresStore connects and ensures the cache table exists.
func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect to Postgres: %w", err)
	}
	if _, err := db.Exec(ctx, pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure cache table: %w", err)
	}
	return &PostgresStore{DB: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.DB.QueryRow(ctx, `SELECT value FROM response_cache WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO response_cache (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value)
	return err
}

func (s *PostgresStore) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
