// Package rediscache provides an optional shared cache of resolved
// domains in front of the PostgreSQL lookup.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leiscope/domain-resolver/internal/config"
)

const keyPrefix = "resolved:"

// Entry is a cached resolution outcome, keyed by domain hash.
type Entry struct {
	CompanyName      string `json:"company_name"`
	ConfidenceScore  int    `json:"confidence_score"`
	PrimaryLEI       string `json:"primary_lei"`
	ExtractionMethod string `json:"extraction_method"`
}

// Cache is a best-effort read-through cache. A nil *Cache is a valid
// disabled cache: every lookup misses and every store is a no-op, so
// callers never branch on whether caching is configured. Redis failures
// are logged and swallowed; resolution never fails because of the cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// New creates a cache from configuration. Returns nil when no Redis
// address is configured.
func New(cfg config.RedisConfig, logger *slog.Logger) *Cache {
	if cfg.Addr == "" {
		return nil
	}
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: cfg.TTL,
		log: logger.With("adapter", "rediscache"),
	}
}

// NewWithClient creates a cache around an existing client (for testing).
func NewWithClient(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		log:    logger.With("adapter", "rediscache"),
	}
}

// Get returns the cached entry for a domain hash, or nil on a miss.
func (c *Cache) Get(ctx context.Context, domainHash string) *Entry {
	if c == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, keyPrefix+domainHash).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WarnContext(ctx, "cache read failed", slog.String("hash", domainHash), slog.String("error", err.Error()))
		}
		return nil
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.log.WarnContext(ctx, "cache entry corrupt, dropping", slog.String("hash", domainHash))
		c.client.Del(ctx, keyPrefix+domainHash)
		return nil
	}
	return &e
}

// Set stores an entry for a domain hash with the configured TTL.
func (c *Cache) Set(ctx context.Context, domainHash string, e Entry) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+domainHash, raw, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "cache write failed", slog.String("hash", domainHash), slog.String("error", err.Error()))
	}
}

// Ping verifies connectivity for readiness checks. A nil cache is
// always ready.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
