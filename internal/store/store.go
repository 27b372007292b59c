// Package store provides caches for property lookup responses.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/propcalc/internal/config"
)

// ErrClosed is returned by operations on a closed cache
var ErrClosed = errors.New("cache closed")

// Cache stores opaque values under string keys. A zero ttl never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns the cache selected by the settings. The "none" backend
// returns a nil Cache and callers skip caching.
func Open(cfg config.CacheSettings) (Cache, error) {
	switch cfg.Backend {
	case config.CacheSQLite:
		c, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.CacheRedis:
		return NewRedisCache(cfg.RedisAddr, cfg.RedisDB), nil
	case config.CacheMemory:
		return NewMemoryCache(), nil
	case config.CacheNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
