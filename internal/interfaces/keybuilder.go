package interfaces

import "traveltime-service/internal/models"

//go:generate mockgen -package=mock -source=keybuilder.go -destination=mock/keybuilder.go

// KeyBuilder canonizes resolution inputs into deterministic cache keys
type KeyBuilder interface {
	// Build derives the cache key for (hall, home-location hash, day type).
	// Identical inputs yield identical keys across process restarts; any
	// differing input yields a different key.
	Build(hallID string, homeHash string, day models.DayType) (string, error)
	// HashLocation produces a stable textual digest of a coordinate pair,
	// tolerant of floating-point formatting differences.
	HashLocation(coords models.Coordinates) string
}
