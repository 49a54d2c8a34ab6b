package daytype

import (
	"testing"
	"time"

	"traveltime-service/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want models.DayType
	}{
		{
			name: "saturday",
			date: time.Date(2025, 1, 18, 12, 0, 0, 0, time.UTC),
			want: models.DayTypeSaturday,
		},
		{
			name: "sunday",
			date: time.Date(2025, 1, 19, 12, 0, 0, 0, time.UTC),
			want: models.DayTypeSunday,
		},
		{
			name: "monday",
			date: time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC),
			want: models.DayTypeWeekday,
		},
		{
			name: "friday",
			date: time.Date(2025, 1, 24, 12, 0, 0, 0, time.UTC),
			want: models.DayTypeWeekday,
		},
		{
			name: "midnight boundary stays on its calendar day",
			date: time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC),
			want: models.DayTypeSaturday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.date); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestClassify_Total(t *testing.T) {
	// Every day of a full week maps to exactly one valid day type.
	start := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC) // a Monday
	for i := 0; i < 7; i++ {
		got := Classify(start.AddDate(0, 0, i))
		if !got.Valid() {
			t.Errorf("Classify returned invalid day type %q", got)
		}
	}
}
