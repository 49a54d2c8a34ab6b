// Package daytype maps calendar dates onto the recurring transit-schedule
// buckets that timetables repeat by.
package daytype

import (
	"time"

	"traveltime-service/internal/models"
)

// Classify returns the day type for t in t's own location. Saturday and
// Sunday map to their own buckets, every other weekday shares one schedule.
// The function is total: every date maps to exactly one day type.
func Classify(t time.Time) models.DayType {
	switch t.Weekday() {
	case time.Saturday:
		return models.DayTypeSaturday
	case time.Sunday:
		return models.DayTypeSunday
	default:
		return models.DayTypeWeekday
	}
}
