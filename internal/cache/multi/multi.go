// Package multi composes cache tiers into a single Cache. Reads try each
// tier in order; writes and deletes go to every tier.
package multi

import (
	"context"

	"go.uber.org/zap"

	"traveltime-service/internal/interfaces"
	"traveltime-service/internal/models"
)

// Ensure MultiCache implements interfaces.Cache
var _ interfaces.Cache = (*MultiCache)(nil)

// MultiCache tries multiple cache implementations in order. With propagation
// enabled, a hit in a later tier is written back into the earlier tiers so
// subsequent reads are served closer to the caller.
type MultiCache struct {
	caches            []interfaces.Cache
	enablePropagation bool
	logger            *zap.Logger
}

// NewMultiCache creates a new MultiCache instance with provided cache implementations
func NewMultiCache(caches []interfaces.Cache, logger *zap.Logger, enablePropagation bool) interfaces.Cache {
	return &MultiCache{
		caches:            caches,
		enablePropagation: enablePropagation,
		logger:            logger,
	}
}

// Get retrieves the entry from the first tier that has it
func (mc *MultiCache) Get(ctx context.Context, key string) (*models.CacheEntry, bool) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for get operation", zap.String("key", key))
		return nil, false
	}

	for i, cache := range mc.caches {
		entry, found := cache.Get(ctx, key)
		if !found {
			continue
		}

		if mc.enablePropagation && i > 0 {
			// Propagate the entry as stored so the earlier tiers keep its
			// original StoredAt stamp; re-stamping would restart the TTL
			// clock and let the result outlive its freshness window.
			for _, earlier := range mc.caches[:i] {
				earlier.SetEntry(ctx, key, *entry)
			}
		}

		return entry, true
	}
	return nil, false
}

// Set stores the result in all tiers
func (mc *MultiCache) Set(ctx context.Context, key string, result models.TravelTimeResult) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for set operation", zap.String("key", key))
		return
	}

	for _, cache := range mc.caches {
		cache.Set(ctx, key, result)
	}
}

// SetEntry stores the entry as-is in all tiers
func (mc *MultiCache) SetEntry(ctx context.Context, key string, entry models.CacheEntry) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for set operation", zap.String("key", key))
		return
	}

	for _, cache := range mc.caches {
		cache.SetEntry(ctx, key, entry)
	}
}

// Delete removes the entry from all tiers
func (mc *MultiCache) Delete(ctx context.Context, key string) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for delete operation", zap.String("key", key))
		return
	}

	for _, cache := range mc.caches {
		cache.Delete(ctx, key)
	}
}
