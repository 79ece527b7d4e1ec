package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"periciapi/internal/kvstore"
)

// DefaultQuotaBytes caps a single slot's value at 5 MiB, mirroring the
// storage ceiling the original client operated under.
const DefaultQuotaBytes = 5 * 1024 * 1024

// KVPostgres is a PostgreSQL implementation of kvstore.Store backed by a
// single kv_slots table. It uses database/sql with parameterized queries and
// contains no business logic.
type KVPostgres struct {
	db    *sql.DB
	quota int
}

// NewKVPostgres creates a new KVPostgres store. quotaBytes <= 0 falls back to
// DefaultQuotaBytes.
func NewKVPostgres(db *sql.DB, quotaBytes int) *KVPostgres {
	if quotaBytes <= 0 {
		quotaBytes = DefaultQuotaBytes
	}
	return &KVPostgres{db: db, quota: quotaBytes}
}

var _ kvstore.Store = (*KVPostgres)(nil)

// Get fetches the raw value for a key. An absent key yields (nil, nil).
func (s *KVPostgres) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM kv_slots WHERE key = $1`
	var value []byte
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("kvstore get %q: %w", key, err)
	}
	return value, nil
}

// Set upserts the value for a key. Values larger than the quota are rejected
// with kvstore.ErrQuotaExceeded before any I/O.
func (s *KVPostgres) Set(ctx context.Context, key string, value []byte) error {
	if len(value) > s.quota {
		return fmt.Errorf("kvstore set %q (%d bytes): %w", key, len(value), kvstore.ErrQuotaExceeded)
	}
	const q = `
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("kvstore set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *KVPostgres) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_slots WHERE key = $1`
	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("kvstore delete %q: %w", key, err)
	}
	return nil
}
