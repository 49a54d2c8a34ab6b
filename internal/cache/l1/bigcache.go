package l1

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"traveltime-service/internal/config"
	"traveltime-service/internal/interfaces"
	"traveltime-service/internal/metrics"
	"traveltime-service/internal/models"
)

// Ensure BigCache implements interfaces.Cache
var _ interfaces.Cache = (*BigCache)(nil)

// BigCache is the in-process read accelerator in front of the durable tier.
// Entries carry their own StoredAt stamp; TTL is enforced lazily on read
// against the configured retention window.
type BigCache struct {
	cache  *bigcache.BigCache
	ttl    time.Duration
	clock  clock.Clock
	logger *zap.Logger
}

// NewBigCache creates a new BigCache instance
func NewBigCache(cfg *config.MemoryCacheConfig, ttl time.Duration, clk clock.Clock, logger *zap.Logger) (interfaces.Cache, error) {
	bcConfig := bigcache.DefaultConfig(ttl)
	bcConfig.HardMaxCacheSize = cfg.SizeMB
	bcConfig.Verbose = false
	bcConfig.MaxEntrySize = 4 * 1024

	bc, err := bigcache.New(context.Background(), bcConfig)
	if err != nil {
		return nil, err
	}

	return &BigCache{
		cache:  bc,
		ttl:    ttl,
		clock:  clk,
		logger: logger,
	}, nil
}

// Get retrieves an entry, treating corruption and expiry as a miss
func (bc *BigCache) Get(_ context.Context, key string) (*models.CacheEntry, bool) {
	data, err := bc.cache.Get(key)
	if err != nil {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		bc.logger.Warn("Failed to unmarshal L1 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "decode")
		_ = bc.cache.Delete(key) // Remove corrupted entry
		return nil, false
	}

	if entry.IsExpired(bc.ttl, bc.clock.Now()) {
		_ = bc.cache.Delete(key)
		return nil, false
	}

	metrics.RecordCacheHit("l1")
	return &entry, true
}

// Set stores a result, stamping the current time as StoredAt
func (bc *BigCache) Set(ctx context.Context, key string, result models.TravelTimeResult) {
	bc.SetEntry(ctx, key, models.CacheEntry{
		Result:   result,
		StoredAt: bc.clock.Now().Unix(),
	})
}

// SetEntry stores an entry with its original StoredAt stamp intact
func (bc *BigCache) SetEntry(_ context.Context, key string, entry models.CacheEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		bc.logger.Error("Failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "encode")
		return
	}

	if err := bc.cache.Set(key, data); err != nil {
		bc.logger.Error("Failed to set cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "upstream")
	}
}

// Delete removes entry from cache
func (bc *BigCache) Delete(_ context.Context, key string) {
	_ = bc.cache.Delete(key)
}

// Close closes the cache
func (bc *BigCache) Close() error {
	return bc.cache.Close()
}
