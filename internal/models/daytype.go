package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DayType is one of the three recurring transit-schedule buckets that public
// transit timetables repeat by. Two dates with the same day type share the
// same schedule, which is what makes travel-time results cacheable across
// calendar days.
type DayType string

const (
	DayTypeWeekday  DayType = "weekday"
	DayTypeSaturday DayType = "saturday"
	DayTypeSunday   DayType = "sunday"
)

// Valid reports whether d is one of the three known day types.
func (d DayType) Valid() bool {
	switch d {
	case DayTypeWeekday, DayTypeSaturday, DayTypeSunday:
		return true
	}
	return false
}

// UnmarshalYAML implements custom YAML unmarshaling for DayType
func (d *DayType) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	dt := DayType(str)
	if !dt.Valid() {
		return fmt.Errorf("invalid day type '%s': must be one of 'weekday', 'saturday', 'sunday'", str)
	}
	*d = dt
	return nil
}
