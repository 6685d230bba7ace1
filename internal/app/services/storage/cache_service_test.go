package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	common "github.com/usa-trezo/en-us/internal/app/common/exception_handler"
	"github.com/usa-trezo/en-us/internal/app/constants"
	"github.com/usa-trezo/en-us/internal/app/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	entries []models.MarketEntry
	err     error
	calls   int
}

func (s *stubFetcher) FetchSnapshot(context.Context) ([]models.MarketEntry, error) {
	s.calls++
	return s.entries, s.err
}

func newCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	cache, err := NewRedis(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(cache.Close)
	return cache, mr
}

func btc() []models.MarketEntry {
	return []models.MarketEntry{{ID: "bitcoin", Symbol: "btc", CurrentPrice: 65000.5, PriceChangePercentage24h: models.Change(1.23)}}
}

func TestNewRedisUnreachable(t *testing.T) {
	_, err := NewRedis("127.0.0.1:1", "", 0)
	require.Error(t, err)
	assert.Equal(t, common.ErrCacheConnect, common.CodeOf(err))
}

func TestSnapshotRoundTripWithTTL(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	_, ok, err := cache.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.SetSnapshot(ctx, btc(), 25*time.Second))
	assert.Equal(t, 25*time.Second, mr.TTL(constants.SnapshotCacheKey))

	entries, ok, err := cache.GetSnapshot(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, btc(), entries)

	mr.FastForward(26 * time.Second)
	_, ok, err = cache.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetSnapshotCorruptValue(t *testing.T) {
	cache, mr := newCache(t)
	require.NoError(t, mr.Set(constants.SnapshotCacheKey, "{not json"))

	_, ok, err := cache.GetSnapshot(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, common.ErrUnmarshal, common.CodeOf(err))
}

func TestCachedFetcherMissThenHit(t *testing.T) {
	cache, _ := newCache(t)
	upstream := &stubFetcher{entries: btc()}
	f := NewCachedFetcher(upstream, cache, time.Minute)

	first, err := f.FetchSnapshot(context.Background())
	require.NoError(t, err)
	second, err := f.FetchSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.calls)
	assert.Equal(t, first, second)
}

func TestCachedFetcherUpstreamFailureIsNotCached(t *testing.T) {
	cache, mr := newCache(t)
	upstream := &stubFetcher{err: errors.New("503")}
	f := NewCachedFetcher(upstream, cache, time.Minute)

	_, err := f.FetchSnapshot(context.Background())
	require.Error(t, err)
	assert.False(t, mr.Exists(constants.SnapshotCacheKey))
}

func TestCachedFetcherFallsThroughWhenCacheIsDown(t *testing.T) {
	cache, mr := newCache(t)
	upstream := &stubFetcher{entries: btc()}
	f := NewCachedFetcher(upstream, cache, time.Minute)
	mr.Close()

	entries, err := f.FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, btc(), entries)
	assert.Equal(t, 1, upstream.calls)
}
