package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process LRU cache with per-entry expiry
type MemoryCache struct {
	maxItems int
	now      func() time.Time

	mu    sync.Mutex
	items map[string]*list.Element
	lru   *list.List
}

type memoryItem struct {
	key       string
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// MemoryOption configures a MemoryCache
type MemoryOption func(*MemoryCache)

// WithClock replaces time.Now, for expiry tests
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryCache) {
		m.now = now
	}
}

// NewMemoryCache creates a new in-memory LRU cache holding at most maxItems
// entries. A non-positive maxItems means unbounded.
func NewMemoryCache(maxItems int, opts ...MemoryOption) *MemoryCache {
	m := &MemoryCache{
		maxItems: maxItems,
		now:      time.Now,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get retrieves a copy of the stored value
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, found := m.items[key]
	if !found {
		return nil, nil
	}

	item := elem.Value.(*memoryItem)
	if m.expired(item) {
		m.removeElement(elem)
		return nil, nil
	}

	// Move to front (most recently used)
	m.lru.MoveToFront(elem)

	value := make([]byte, len(item.value))
	copy(value, item.value)
	return value, nil
}

// Set stores a copy of value. A non-positive expiration never expires.
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = m.now().Add(expiration)
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	// If key already exists, update it
	if elem, found := m.items[key]; found {
		item := elem.Value.(*memoryItem)
		item.value = stored
		item.expiresAt = expiresAt
		m.lru.MoveToFront(elem)
		return nil
	}

	elem := m.lru.PushFront(&memoryItem{
		key:       key,
		value:     stored,
		expiresAt: expiresAt,
	})
	m.items[key] = elem

	// Evict oldest items if over capacity
	for m.maxItems > 0 && m.lru.Len() > m.maxItems {
		m.removeElement(m.lru.Back())
	}

	return nil
}

// Delete removes a key from the cache
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, found := m.items[key]; found {
		m.removeElement(elem)
	}
	return nil
}

// Exists checks if an unexpired entry exists, without touching recency
func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, found := m.items[key]
	return found && !m.expired(elem.Value.(*memoryItem)), nil
}

// Close drops all entries
func (m *MemoryCache) Close() error {
	m.Clear()
	return nil
}

// Health always succeeds
func (m *MemoryCache) Health(ctx context.Context) error {
	return nil
}

// Clear removes all items from the cache
func (m *MemoryCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]*list.Element)
	m.lru = list.New()
}

// Size returns the current number of items in the cache, expired included
func (m *MemoryCache) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// TTL reports the remaining lifetime of an unexpired entry
func (m *MemoryCache) TTL(ctx context.Context, key string) (time.Duration, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, found := m.items[key]
	if !found {
		return 0, false, nil
	}
	item := elem.Value.(*memoryItem)
	if m.expired(item) {
		return 0, false, nil
	}
	if item.expiresAt.IsZero() {
		return 0, true, nil
	}
	return item.expiresAt.Sub(m.now()), true, nil
}

// CleanupExpired removes all expired items and returns how many were removed
func (m *MemoryCache) CleanupExpired(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for _, elem := range m.items {
		if m.expired(elem.Value.(*memoryItem)) {
			m.removeElement(elem)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryCache) expired(item *memoryItem) bool {
	return !item.expiresAt.IsZero() && !m.now().Before(item.expiresAt)
}

// removeElement removes an element from both the map and list. Callers hold mu.
func (m *MemoryCache) removeElement(elem *list.Element) {
	item := elem.Value.(*memoryItem)
	delete(m.items, item.key)
	m.lru.Remove(elem)
}
