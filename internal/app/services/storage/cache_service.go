package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	common "github.com/usa-trezo/en-us/internal/app/common/exception_handler"
	"github.com/usa-trezo/en-us/internal/app/common/logger"
	"github.com/usa-trezo/en-us/internal/app/constants"
	"github.com/usa-trezo/en-us/internal/app/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CacheService shares the latest upstream markets payload between page replicas.
type CacheService struct {
	Client *redis.Client
	key    string
	logger *logrus.Logger
}

func NewRedis(addr, password string, db int) (*CacheService, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, common.NewCustomError(common.ErrCacheConnect, "Failed to connect to Redis", err)
	}

	return &CacheService{Client: rdb, key: constants.SnapshotCacheKey, logger: logger.GetLogger()}, nil
}

type cachedSnapshot struct {
	Entries  []models.MarketEntry `json:"entries"`
	CachedAt time.Time            `json:"cached_at"`
}

// GetSnapshot reports ok=false on a cache miss.
func (c *CacheService) GetSnapshot(ctx context.Context) (entries []models.MarketEntry, ok bool, err error) {
	data, err := c.Client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var snap cachedSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, common.NewCustomError(common.ErrUnmarshal, "Failed to unmarshal cached snapshot", err)
	}
	return snap.Entries, true, nil
}

func (c *CacheService) SetSnapshot(ctx context.Context, entries []models.MarketEntry, ttl time.Duration) error {
	value, err := json.Marshal(cachedSnapshot{Entries: entries, CachedAt: time.Now().UTC()})
	if err != nil {
		return common.NewCustomError(common.ErrMarshal, "Failed to marshal snapshot", err)
	}
	return c.Client.Set(ctx, c.key, value, ttl).Err()
}

func (c *CacheService) Close() {
	if err := c.Client.Close(); err != nil {
		c.logger.WithError(err).Warn("Failed to close Redis client")
	}
}
