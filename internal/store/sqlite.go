package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS lookup_cache (
	cache_key  TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	stored_at  INTEGER NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_lookup_cache_expires ON lookup_cache(expires_at);
`

// SQLiteCache persists entries in a local SQLite database
type SQLiteCache struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens or creates the cache database at the given path
func OpenSQLite(dbPath string) (*SQLiteCache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteCache{db: db, now: time.Now}, nil
}

func (c *SQLiteCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	var expiresAt int64
	err := c.db.QueryRowContext(ctx,
		"SELECT payload, expires_at FROM lookup_cache WHERE cache_key = ?", key,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}

	if expiresAt != 0 && c.now().UnixNano() >= expiresAt {
		// expired rows are removed lazily
		if _, err := c.db.ExecContext(ctx, "DELETE FROM lookup_cache WHERE cache_key = ?", key); err != nil {
			return nil, false, fmt.Errorf("evicting %s: %w", key, err)
		}
		return nil, false, nil
	}
	return payload, true, nil
}

func (c *SQLiteCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := c.now()
	var expiresAt int64
	if ttl > 0 {
		expiresAt = now.Add(ttl).UnixNano()
	}
	_, err := c.db.ExecContext(ctx, `INSERT OR REPLACE INTO lookup_cache
		(cache_key, payload, stored_at, expires_at) VALUES (?, ?, ?, ?)`,
		key, value, now.UnixNano(), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (c *SQLiteCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM lookup_cache WHERE cache_key = ?", key)
	return err
}

// Purge removes every expired entry and reports how many were dropped
func (c *SQLiteCache) Purge(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		"DELETE FROM lookup_cache WHERE expires_at != 0 AND expires_at <= ?", c.now().UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the cache database
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
