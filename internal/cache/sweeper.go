package cache

import (
	"context"
	"time"

	"trending-api/internal/logging"
)

// Sweepable is anything with a Sweep method, e.g. *TTLCache.
type Sweepable interface {
	Sweep() int
}

// RunSweeper calls s.Sweep every interval until ctx is done. It blocks.
func RunSweeper(ctx context.Context, name string, s Sweepable, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				logging.Debug().Str("cache", name).Int("removed", removed).Msg("swept expired cache entries")
			}
		}
	}
}
