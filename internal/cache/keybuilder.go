package cache

import (
	"crypto/md5"
	"errors"
	"fmt"
	"math"
	"strconv"

	"traveltime-service/internal/interfaces"
	"traveltime-service/internal/models"
)

// locationPrecision is the number of decimal places coordinates are rounded
// to before hashing. Five places is roughly one meter, well below the
// resolution a journey planner distinguishes, so numerically equal inputs
// that differ only in floating-point formatting hash identically.
const locationPrecision = 5

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// KeyBuilderImpl implements the KeyBuilder interface
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// Build creates the cache key for a (hall, home-location hash, day type)
// triple. Keys are purely value-derived, so the same triple maps to the same
// slot across process restarts.
func (kb *KeyBuilderImpl) Build(hallID string, homeHash string, day models.DayType) (string, error) {
	if hallID == "" {
		return "", errors.New("hall id cannot be empty")
	}

	if homeHash == "" {
		return "", errors.New("home location hash cannot be empty")
	}

	if !day.Valid() {
		return "", fmt.Errorf("invalid day type %q", string(day))
	}

	return fmt.Sprintf("traveltime:%s:%s:%s", hallID, homeHash, day), nil
}

// HashLocation digests a coordinate pair into a short stable token. The
// coordinates are first rendered at fixed precision so that values which are
// numerically equal always produce the same digest.
func (kb *KeyBuilderImpl) HashLocation(coords models.Coordinates) string {
	canonical := canonicalCoordinate(coords.Latitude) + "," + canonicalCoordinate(coords.Longitude)

	hasher := md5.New()
	hasher.Write([]byte(canonical))
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

// canonicalCoordinate rounds to fixed precision and collapses negative zero,
// the two ways equal coordinate values end up with different textual forms.
func canonicalCoordinate(v float64) string {
	factor := math.Pow10(locationPrecision)
	rounded := math.Round(v*factor) / factor
	if rounded == 0 {
		rounded = 0 // normalize -0
	}
	return strconv.FormatFloat(rounded, 'f', locationPrecision, 64)
}
