package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching operations.
// Get returns (nil, nil) on a miss.
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error

	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)

	// Close closes the cache connection
	Close() error

	// Health checks cache health
	Health(ctx context.Context) error
}

// TTLReader is implemented by backends that can report how long an entry
// has left. found is false for a missing key; a zero ttl means no expiry.
type TTLReader interface {
	TTL(ctx context.Context, key string) (ttl time.Duration, found bool, err error)
}

// Sweeper is implemented by backends that need expired entries removed
// explicitly. It returns how many entries were removed.
type Sweeper interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// CacheError represents a cache operation error
type CacheError struct {
	Backend   string
	Operation string
	Key       string
	Err       error
}

func (e *CacheError) Error() string {
	msg := "cache " + e.Operation + " failed"
	if e.Backend != "" {
		msg = e.Backend + " " + msg
	}
	if e.Key != "" {
		msg += " for key '" + e.Key + "'"
	}
	return msg + ": " + e.Err.Error()
}

func (e *CacheError) Unwrap() error {
	return e.Err
}
