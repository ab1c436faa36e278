package cache

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/valkey-io/valkey-go"
)

// valkeyCache implements Cache interface using Valkey
type valkeyCache struct {
	client valkey.Client
}

// NewValkeyCache creates a new Valkey-backed cache
func NewValkeyCache(ctx context.Context, valkeyURL string) (Cache, error) {
	addr, password, err := parseValkeyURL(valkeyURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Valkey URL: %w", err)
	}

	clientOption := valkey.ClientOption{
		InitAddress: []string{addr},
	}
	if password != "" {
		clientOption.Password = password
	}

	client, err := valkey.NewClient(clientOption)
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	cache := &valkeyCache{
		client: client,
	}

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := cache.Health(pingCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return cache, nil
}

// Get retrieves a value from Valkey
func (c *valkeyCache) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := c.client.B().Get().Key(key).Build()
	result := c.client.Do(ctx, cmd)

	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, &CacheError{Backend: "valkey", Operation: "get", Key: key, Err: err}
	}

	data, err := result.AsBytes()
	if err != nil {
		return nil, &CacheError{Backend: "valkey", Operation: "get", Key: key, Err: err}
	}

	return data, nil
}

// Set stores a value in Valkey with expiration
func (c *valkeyCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	var cmd valkey.Completed
	if expiration > 0 {
		cmd = c.client.B().Set().Key(key).Value(string(value)).Ex(expiration).Build()
	} else {
		cmd = c.client.B().Set().Key(key).Value(string(value)).Build()
	}

	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return &CacheError{Backend: "valkey", Operation: "set", Key: key, Err: err}
	}

	return nil
}

// TTL reports the remaining lifetime of a key using PTTL
func (c *valkeyCache) TTL(ctx context.Context, key string) (time.Duration, bool, error) {
	cmd := c.client.B().Pttl().Key(key).Build()
	ms, err := c.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, false, &CacheError{Backend: "valkey", Operation: "ttl", Key: key, Err: err}
	}
	return pttlDuration(ms)
}

// pttlDuration maps a PTTL reply: -2 is a missing key, -1 a key without expiry
func pttlDuration(ms int64) (time.Duration, bool, error) {
	switch {
	case ms == -2:
		return 0, false, nil
	case ms == -1:
		return 0, true, nil
	case ms <= 0:
		return 0, false, nil
	}
	return time.Duration(ms) * time.Millisecond, true, nil
}

// Delete removes a key from Valkey
func (c *valkeyCache) Delete(ctx context.Context, key string) error {
	cmd := c.client.B().Del().Key(key).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return &CacheError{Backend: "valkey", Operation: "delete", Key: key, Err: err}
	}
	return nil
}

// Exists checks if a key exists in Valkey
func (c *valkeyCache) Exists(ctx context.Context, key string) (bool, error) {
	cmd := c.client.B().Exists().Key(key).Build()
	count, err := c.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &CacheError{Backend: "valkey", Operation: "exists", Key: key, Err: err}
	}
	return count > 0, nil
}

// Close closes the Valkey connection
func (c *valkeyCache) Close() error {
	c.client.Close()
	return nil
}

// Health checks Valkey health
func (c *valkeyCache) Health(ctx context.Context) error {
	cmd := c.client.B().Ping().Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("Valkey health check failed: %w", err)
	}
	return nil
}

// parseValkeyURL extracts connection details from Valkey URL
func parseValkeyURL(valkeyURL string) (address, password string, err error) {
	u, err := url.Parse(valkeyURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Host == "" {
		return "", "", fmt.Errorf("missing host in URL")
	}
	address = u.Host

	if u.User != nil {
		password, _ = u.User.Password()
	}

	return address, password, nil
}

// l1MaxTTL caps how long the in-process level keeps an entry
const l1MaxTTL = time.Hour

// MultiLevelCache fronts a shared cache with an in-process LRU
type MultiLevelCache struct {
	l1 *MemoryCache
	l2 Cache
}

// NewMultiLevelCache layers an in-memory L1 of l1MaxItems entries over l2
func NewMultiLevelCache(l2 Cache, l1MaxItems int, opts ...MemoryOption) *MultiLevelCache {
	return &MultiLevelCache{
		l1: NewMemoryCache(l1MaxItems, opts...),
		l2: l2,
	}
}

// Get retrieves from L1 first, then L2. An L2 hit is copied into L1 for
// no longer than the entry has left in L2.
func (c *MultiLevelCache) Get(ctx context.Context, key string) ([]byte, error) {
	if data, _ := c.l1.Get(ctx, key); data != nil {
		return data, nil
	}

	data, err := c.l2.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if data != nil {
		if ttl, ok := c.l1TTL(ctx, key); ok {
			_ = c.l1.Set(ctx, key, data, ttl)
		}
	}

	return data, nil
}

// l1TTL returns the L1 lifetime for a key just read from L2. ok is false
// when the entry should not be kept in L1 at all.
func (c *MultiLevelCache) l1TTL(ctx context.Context, key string) (time.Duration, bool) {
	reader, ok := c.l2.(TTLReader)
	if !ok {
		return l1MaxTTL, true
	}

	remaining, found, err := reader.TTL(ctx, key)
	if err != nil || !found {
		return 0, false
	}
	if remaining > 0 && remaining < l1MaxTTL {
		return remaining, true
	}
	return l1MaxTTL, true
}

// Set stores in L2, then L1 with a TTL no longer than l1MaxTTL
func (c *MultiLevelCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if err := c.l2.Set(ctx, key, value, expiration); err != nil {
		return err
	}

	l1Expiration := expiration
	if l1Expiration <= 0 || l1Expiration > l1MaxTTL {
		l1Expiration = l1MaxTTL
	}
	return c.l1.Set(ctx, key, value, l1Expiration)
}

// Delete removes from both levels
func (c *MultiLevelCache) Delete(ctx context.Context, key string) error {
	_ = c.l1.Delete(ctx, key)
	return c.l2.Delete(ctx, key)
}

// Exists checks both levels
func (c *MultiLevelCache) Exists(ctx context.Context, key string) (bool, error) {
	if ok, _ := c.l1.Exists(ctx, key); ok {
		return true, nil
	}
	return c.l2.Exists(ctx, key)
}

// CleanupExpired sweeps L1, and L2 when it needs sweeping
func (c *MultiLevelCache) CleanupExpired(ctx context.Context) (int64, error) {
	removed, _ := c.l1.CleanupExpired(ctx)

	if sweeper, ok := c.l2.(Sweeper); ok {
		n, err := sweeper.CleanupExpired(ctx)
		if err != nil {
			return removed, err
		}
		removed += n
	}
	return removed, nil
}

// Close closes L2 connection
func (c *MultiLevelCache) Close() error {
	c.l1.Clear()
	return c.l2.Close()
}

// Health checks L2 health
func (c *MultiLevelCache) Health(ctx context.Context) error {
	return c.l2.Health(ctx)
}
