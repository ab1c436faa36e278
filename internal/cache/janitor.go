package cache

import (
	"context"
	"log/slog"
	"time"
)

// DefaultCleanupInterval is how often RunJanitor sweeps when no interval is given
const DefaultCleanupInterval = 10 * time.Minute

// RunJanitor removes expired entries from c every interval until ctx is
// done. It returns immediately for backends that expire entries themselves.
func RunJanitor(ctx context.Context, c Cache, interval time.Duration) {
	sweeper, ok := c.(Sweeper)
	if !ok {
		return
	}
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sweeper.CleanupExpired(ctx)
			if err != nil {
				slog.Warn("Cache cleanup failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Debug("Removed expired cache entries", "count", removed)
			}
		}
	}
}
