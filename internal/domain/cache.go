package domain

import (
	"context"
	"time"
)

// CacheError is returned by Cache implementations for cache-level conditions.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss reports a key that is absent or expired.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the string key/value store the question bank is cached in.
type Cache interface {
	// Get returns ErrCacheMiss for an absent key.
	Get(ctx context.Context, key string) (string, error)
	// Set overwrites key; a zero ttl keeps the value until deleted.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Delete succeeds for absent keys.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
