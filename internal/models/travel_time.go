package models

import "time"

// TravelTimeResult is a single public-transit connection between the user's
// home location and a hall. Immutable once produced by a transport client.
type TravelTimeResult struct {
	DurationMinutes int       `json:"durationMinutes"`
	DepartureTime   time.Time `json:"departureTime"`
	ArrivalTime     time.Time `json:"arrivalTime"`
	Transfers       int       `json:"transfers"`
}

// CacheEntry wraps a TravelTimeResult with the write timestamp used for lazy
// TTL expiry. Entries are serialized to JSON for both cache tiers.
type CacheEntry struct {
	Result   TravelTimeResult `json:"result"`
	StoredAt int64            `json:"storedAt"` // unix seconds
}

// IsExpired reports whether the entry is older than ttl at the given instant.
// Expiry is checked lazily on read; there is no background sweeper.
func (e *CacheEntry) IsExpired(ttl time.Duration, now time.Time) bool {
	return now.Unix()-e.StoredAt > int64(ttl.Seconds())
}

// HallTarget is a read-only projection of an assignment record: the venue to
// compute travel time to, plus the match start used to anchor the connection.
type HallTarget struct {
	ID            string       `json:"id"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	ReferenceTime *time.Time   `json:"referenceTime,omitempty"`
}
