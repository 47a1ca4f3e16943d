// Package cache stores rendered views and other byte payloads, in memory or in Redis.
package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache is safe for concurrent use.
type Cache interface {
	// Get returns ErrCacheMiss when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value for ttl; a zero ttl uses the cache default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrCacheMiss   Error = "cache miss"
	ErrCacheClosed Error = "cache closed"
)

// New returns a Redis cache when redisURL is set and reachable, otherwise a
// memory cache.
func New(redisURL string, ttl time.Duration, log logrus.FieldLogger) Cache {
	if redisURL != "" {
		c, err := NewRedisCache(redisURL, "bdl:", ttl)
		if err == nil {
			log.WithField("addr", c.Addr()).Info("Using redis cache")
			return c
		}
		log.WithError(err).Warn("Redis unavailable, falling back to memory cache")
	}
	return NewMemoryCache(ttl, time.Minute)
}
