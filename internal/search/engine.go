package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"songsearch/internal/cache"
	"songsearch/internal/models"
)

// ErrSearchTermRequired is returned when the request has no usable term
var ErrSearchTermRequired = errors.New("search term is required")

// IsBadRequest reports whether err was caused by the caller's input
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrSearchTermRequired)
}

// DefaultCacheTTL is how long an assembled response is served from cache
const DefaultCacheTTL = 6 * time.Hour

// SearchRequest is one search with optional filters. A nil filter is absent.
type SearchRequest struct {
	Term  string
	Album *string
	Genre *string
}

// Aggregator collects songs from every catalog for a term
type Aggregator interface {
	Aggregate(ctx context.Context, term string) []models.Song
}

// Engine runs searches: sanitize, cache lookup, aggregate, assemble, store
type Engine struct {
	aggregator Aggregator
	cache      cache.Cache
	ttl        time.Duration
}

// NewEngine creates a search engine. A non-positive ttl uses DefaultCacheTTL.
func NewEngine(aggregator Aggregator, c cache.Cache, ttl time.Duration) *Engine {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Engine{
		aggregator: aggregator,
		cache:      c,
		ttl:        ttl,
	}
}

// Search returns the JSON array of matching songs. A cached payload is
// returned verbatim. Cache failures degrade to a miss. Once started, the
// catalog queries run to completion even if ctx is cancelled; each call is
// bounded by its platform timeout. A cancelled request is never cached.
func (e *Engine) Search(ctx context.Context, req SearchRequest) ([]byte, error) {
	term := Sanitize(req.Term)
	if term == "" {
		return nil, ErrSearchTermRequired
	}
	album := SanitizeOptional(req.Album)
	genre := SanitizeOptional(req.Genre)

	key := CacheKey(term, album, genre)

	cached, err := e.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Search cache lookup failed", "key", key, "error", err)
	} else if cached != nil {
		slog.Debug("Search cache hit", "term", term, "key", key)
		return cached, nil
	}

	slog.Debug("Search cache miss, querying catalogs", "term", term)

	songs := Assemble(e.aggregator.Aggregate(context.WithoutCancel(ctx), term), album, genre)

	payload, err := json.Marshal(songs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search results: %w", err)
	}

	if ctx.Err() != nil {
		slog.Debug("Request cancelled, not caching search results", "key", key, "error", ctx.Err())
	} else if err := e.cache.Set(ctx, key, payload, e.ttl); err != nil {
		slog.Warn("Failed to cache search results", "key", key, "error", err)
	}

	slog.Info("Search completed", "term", term, "results", len(songs))
	return payload, nil
}

// Health reports whether the response cache is reachable
func (e *Engine) Health(ctx context.Context) error {
	return e.cache.Health(ctx)
}

// Close releases the response cache
func (e *Engine) Close() error {
	return e.cache.Close()
}
