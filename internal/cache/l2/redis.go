// Package l2 implements the durable travel-time cache on Redis. This tier is
// the persistent store proper: it outlives any single consumer and is shared
// across processes. Storage failures of any kind degrade to cache-miss
// behavior rather than surfacing to callers.
package l2

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/benbjohnson/clock"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"traveltime-service/internal/config"
	"traveltime-service/internal/interfaces"
	"traveltime-service/internal/metrics"
	"traveltime-service/internal/models"
)

// Ensure RedisCache implements interfaces.Cache
var _ interfaces.Cache = (*RedisCache)(nil)

// RedisCache implements the persistent cache tier using Redis
type RedisCache struct {
	client interfaces.RedisClient
	cfg    *config.RedisCacheConfig
	ttl    config.Duration
	clock  clock.Clock
	logger *zap.Logger
}

// NewRedisCache creates a new RedisCache instance with provided client
func NewRedisCache(cfg *config.RedisCacheConfig, ttl config.Duration, client interfaces.RedisClient, clk clock.Clock, logger *zap.Logger) interfaces.Cache {
	return &RedisCache{
		client: client,
		cfg:    cfg,
		ttl:    ttl,
		clock:  clk,
		logger: logger,
	}
}

// Get retrieves an entry, checking TTL lazily against StoredAt. Connection
// errors, corrupt records, and expired entries all read as a miss.
func (rc *RedisCache) Get(ctx context.Context, key string) (*models.CacheEntry, bool) {
	ctx, cancel := context.WithTimeout(ctx, rc.cfg.ReadTimeout.Std())
	defer cancel()

	data, err := rc.client.Get(ctx, key).Result()
	if err != nil {
		// redis.Nil is an ordinary miss; anything else is degraded to one,
		// but counted so storage trouble is visible.
		if !errors.Is(err, redis.Nil) {
			rc.logger.Warn("Failed to read L2 cache entry", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("l2", "upstream")
		}
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		rc.logger.Warn("Failed to unmarshal L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "decode")
		rc.client.Del(context.Background(), key)
		return nil, false
	}

	if entry.IsExpired(rc.ttl.Std(), rc.clock.Now()) {
		rc.client.Del(context.Background(), key)
		return nil, false
	}

	metrics.RecordCacheHit("l2")
	return &entry, true
}

// Set stores a result with the retention window as the Redis expiration. The
// expiration is a storage bound only; freshness is still decided at read time
// from StoredAt.
func (rc *RedisCache) Set(ctx context.Context, key string, result models.TravelTimeResult) {
	rc.SetEntry(ctx, key, models.CacheEntry{
		Result:   result,
		StoredAt: rc.clock.Now().Unix(),
	})
}

// SetEntry stores an entry with its original StoredAt stamp intact
func (rc *RedisCache) SetEntry(ctx context.Context, key string, entry models.CacheEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		rc.logger.Error("Failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "encode")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, rc.cfg.WriteTimeout.Std())
	defer cancel()

	if err := rc.client.Set(ctx, key, data, rc.ttl.Std()).Err(); err != nil {
		rc.logger.Error("Failed to set L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "upstream")
	}
}

// Delete removes the entry for key
func (rc *RedisCache) Delete(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, rc.cfg.WriteTimeout.Std())
	defer cancel()

	if err := rc.client.Del(ctx, key).Err(); err != nil {
		rc.logger.Warn("Failed to delete L2 cache entry", zap.String("key", key), zap.Error(err))
	}
}
