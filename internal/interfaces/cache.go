package interfaces

import (
	"context"

	"traveltime-service/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache interface defines the contract for cache implementations
type Cache interface {
	// Get returns the entry for key and a found flag. Implementations check
	// TTL lazily on read: an expired entry is removed and reported as a miss.
	Get(ctx context.Context, key string) (*models.CacheEntry, bool)
	// Set overwrites any existing entry for key, stamping the current time.
	Set(ctx context.Context, key string, result models.TravelTimeResult)
	// SetEntry stores an entry as-is, preserving its StoredAt stamp. Used when
	// moving entries between tiers so the TTL clock is not restarted.
	SetEntry(ctx context.Context, key string, entry models.CacheEntry)
	// Delete removes the entry for key, forcing the next resolve to refetch.
	Delete(ctx context.Context, key string)
}
