package storage

import (
	"context"
	"time"

	"github.com/usa-trezo/en-us/internal/app/common/logger"
	"github.com/usa-trezo/en-us/internal/app/metrics"
	"github.com/usa-trezo/en-us/internal/app/models"

	"github.com/sirupsen/logrus"
)

type Fetcher interface {
	FetchSnapshot(ctx context.Context) ([]models.MarketEntry, error)
}

// CachedFetcher reads through the shared cache before calling next. Cache
// trouble never fails a fetch; it only costs an upstream call.
type CachedFetcher struct {
	next   Fetcher
	cache  *CacheService
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedFetcher(next Fetcher, cache *CacheService, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache, ttl: ttl, logger: logger.GetLogger()}
}

func (f *CachedFetcher) FetchSnapshot(ctx context.Context) ([]models.MarketEntry, error) {
	entries, ok, err := f.cache.GetSnapshot(ctx)
	switch {
	case err != nil:
		f.logger.WithError(err).Warn("Snapshot cache read failed, falling back to upstream")
		metrics.CacheLookups.WithLabelValues("error").Inc()
	case ok:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return entries, nil
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	entries, err = f.next.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := f.cache.SetSnapshot(ctx, entries, f.ttl); err != nil {
		f.logger.WithError(err).Warn("Snapshot cache write failed")
		metrics.ErrorsTotal.WithLabelValues("cache_set").Inc()
	}
	return entries, nil
}
