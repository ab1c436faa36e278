package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"songsearch/internal/models"
)

// Aggregator queries every provider and concatenates their songs
type Aggregator struct {
	providers []Provider
}

// NewAggregator creates an aggregator over providers in output order
func NewAggregator(providers []Provider) *Aggregator {
	return &Aggregator{providers: providers}
}

// Aggregate runs all providers concurrently. A failing provider is logged
// and contributes no songs; it never affects the others. The result is
// never nil.
func (a *Aggregator) Aggregate(ctx context.Context, term string) []models.Song {
	results := make([][]models.Song, len(a.providers))

	var wg sync.WaitGroup
	for i, provider := range a.providers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			start := time.Now()
			songs, err := Search(ctx, provider, term)
			if err != nil {
				slog.Warn("Provider dropped from results",
					"platform", provider.Name(),
					"kind", ErrorKind(err),
					"error", err)
				return
			}

			slog.Debug("Provider search completed",
				"platform", provider.Name(),
				"songs", len(songs),
				"duration", time.Since(start))
			results[i] = songs
		}()
	}
	wg.Wait()

	merged := make([]models.Song, 0)
	for _, songs := range results {
		merged = append(merged, songs...)
	}
	return merged
}
