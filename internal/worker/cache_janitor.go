package worker

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is a cache backend that can drop its expired entries.
type Sweeper interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// CacheJanitor periodically purges expired response cache entries.
type CacheJanitor struct {
	cache    Sweeper
	interval time.Duration
	logger   *slog.Logger
}

func NewCacheJanitor(cache Sweeper, interval time.Duration, logger *slog.Logger) *CacheJanitor {
	return &CacheJanitor{
		cache:    cache,
		interval: interval,
		logger:   logger,
	}
}

func (j *CacheJanitor) Start(ctx context.Context) {
	j.logger.Info("cache janitor started", "interval", j.interval)
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("cache janitor stopping")
			return
		case <-ticker.C:
			if err := j.Sweep(ctx); err != nil {
				j.logger.Error("cache sweep failed", "error", err)
			}
		}
	}
}

func (j *CacheJanitor) Sweep(ctx context.Context) error {
	removed, err := j.cache.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		j.logger.Info("purged expired cache entries", "count", removed)
	}
	return nil
}
