package noop

import (
	"context"

	"traveltime-service/internal/interfaces"
	"traveltime-service/internal/models"
)

// Ensure NoOpCache implements interfaces.Cache
var _ interfaces.Cache = (*NoOpCache)(nil)

// NoOpCache is a no-operation cache implementation for disabled tiers
type NoOpCache struct{}

// NewNoOpCache creates a new no-operation cache instance
func NewNoOpCache() interfaces.Cache {
	return &NoOpCache{}
}

// Get always returns cache miss
func (n *NoOpCache) Get(_ context.Context, _ string) (*models.CacheEntry, bool) {
	return nil, false
}

// Set does nothing
func (n *NoOpCache) Set(_ context.Context, _ string, _ models.TravelTimeResult) {
	// No-op
}

// SetEntry does nothing
func (n *NoOpCache) SetEntry(_ context.Context, _ string, _ models.CacheEntry) {
	// No-op
}

// Delete does nothing
func (n *NoOpCache) Delete(_ context.Context, _ string) {
	// No-op
}
