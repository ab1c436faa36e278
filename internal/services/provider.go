package services

import (
	"context"
	"fmt"
	"time"

	"songsearch/internal/config"
	"songsearch/internal/models"
)

// Provider defines the interface for catalog integrations
type Provider interface {
	// Name returns the configuration name of this platform
	Name() string

	// Origin returns the origin tag stamped on normalized songs
	Origin() models.Origin

	// AcquireToken returns a bearer token, or "" for catalogs without auth
	AcquireToken(ctx context.Context) (string, error)

	// FetchRaw runs the catalog search and any per-item enrichment
	FetchRaw(ctx context.Context, term string) ([]RawItem, error)

	// Normalize maps raw items to songs. It performs no I/O.
	Normalize(items []RawItem) []models.Song
}

// searchLimit is the number of results requested from every catalog
const searchLimit = 10

// enrichmentWorkers bounds concurrent per-item detail calls
const enrichmentWorkers = 4

// Options tunes provider construction. Zero values use defaults.
type Options struct {
	// Now overrides the clock used for token expiry
	Now func() time.Time
}

// NewProvider builds the provider for a configured platform
func NewProvider(cfg *config.PlatformConfig, opts Options) (Provider, error) {
	if err := config.ValidatePlatformConfig(cfg); err != nil {
		return nil, err
	}

	switch cfg.Name {
	case config.PlatformITunes:
		return NewITunesProvider(cfg), nil
	case config.PlatformSpotify:
		return NewSpotifyProvider(cfg, opts), nil
	case config.PlatformGenius:
		return NewGeniusProvider(cfg, opts), nil
	default:
		return nil, fmt.Errorf("unknown platform: %s", cfg.Name)
	}
}

// NewProviders builds providers for every enabled platform in the fixed
// order iTunes, Spotify, Genius
func NewProviders(cfg *config.Config, opts Options) ([]Provider, error) {
	order := []string{config.PlatformITunes, config.PlatformSpotify, config.PlatformGenius}

	var providers []Provider
	for _, name := range order {
		platformCfg, ok := cfg.GetPlatformConfig(name)
		if !ok || !platformCfg.Enabled {
			continue
		}

		provider, err := NewProvider(platformCfg, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s provider: %w", name, err)
		}
		providers = append(providers, provider)
	}

	return providers, nil
}

// Search runs the full provider pipeline: token, fetch, normalize
func Search(ctx context.Context, p Provider, term string) ([]models.Song, error) {
	items, err := p.FetchRaw(ctx, term)
	if err != nil {
		return nil, err
	}
	return p.Normalize(items), nil
}
