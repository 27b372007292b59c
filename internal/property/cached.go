package property

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rgehrsitz/propcalc/internal/store"
	"github.com/rs/zerolog"
)

// CachedLookup serves repeated address lookups from a cache. Cache failures
// are logged and fall through to the wrapped lookup.
type CachedLookup struct {
	next  AddressLookup
	cache store.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachedLookup wraps next; a nil cache returns next unchanged
func NewCachedLookup(next AddressLookup, cache store.Cache, ttl time.Duration, log zerolog.Logger) AddressLookup {
	if cache == nil {
		return next
	}
	return &CachedLookup{next: next, cache: cache, ttl: ttl, log: log}
}

func (c *CachedLookup) LookupAddress(ctx context.Context, address string) (*domain.PropertyRecord, error) {
	key := cacheKey(address)

	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if ok {
		var rec domain.PropertyRecord
		if err := json.Unmarshal(data, &rec); err == nil {
			c.log.Debug().Str("key", key).Msg("cache hit")
			return &rec, nil
		}
		c.log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	}

	rec, err := c.next.LookupAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rec); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return rec, nil
}

func cacheKey(address string) string {
	return "address:" + strings.ToLower(strings.Join(strings.Fields(address), " "))
}
