package cache

import (
	"context"
	"fmt"

	"songsearch/internal/config"
)

// New builds the cache backend selected by configuration
func New(ctx context.Context, cfg *config.Config) (Cache, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendMemory, "":
		return NewMemoryCache(cfg.CacheMaxItems), nil

	case config.CacheBackendValkey:
		l2, err := NewValkeyCache(ctx, cfg.ValkeyURL)
		if err != nil {
			return nil, err
		}
		return NewMultiLevelCache(l2, cfg.CacheMaxItems), nil

	case config.CacheBackendMongo:
		return NewMongoCache(ctx, cfg.MongodbURL, cfg.MongodbDatabase)

	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.CacheBackend)
	}
}
