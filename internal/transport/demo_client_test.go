package transport

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveltime-service/internal/interfaces"
	"traveltime-service/internal/models"
)

var (
	demoHome = models.Coordinates{Latitude: 52.52, Longitude: 13.40}
	demoHall = models.Coordinates{Latitude: 52.48, Longitude: 13.36}
)

func TestDemoClient_Deterministic(t *testing.T) {
	c := NewDemoClient(clock.NewMock())

	first, err := c.CalculateTravelTime(context.Background(), demoHome, demoHall, interfaces.TravelTimeOptions{})
	require.NoError(t, err)

	second, err := c.CalculateTravelTime(context.Background(), demoHome, demoHall, interfaces.TravelTimeOptions{})
	require.NoError(t, err)

	assert.Equal(t, first.DurationMinutes, second.DurationMinutes)
	assert.Equal(t, first.Transfers, second.Transfers)
}

func TestDemoClient_PlausibleRanges(t *testing.T) {
	c := NewDemoClient(clock.NewMock())

	pairs := []models.Coordinates{
		{Latitude: 52.48, Longitude: 13.36},
		{Latitude: 48.13, Longitude: 11.58},
		{Latitude: 53.55, Longitude: 9.99},
		{Latitude: 50.94, Longitude: 6.96},
	}

	for _, hall := range pairs {
		result, err := c.CalculateTravelTime(context.Background(), demoHome, hall, interfaces.TravelTimeOptions{})
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.DurationMinutes, 15)
		assert.LessOrEqual(t, result.DurationMinutes, 90)
		assert.GreaterOrEqual(t, result.Transfers, 0)
		assert.LessOrEqual(t, result.Transfers, 3)
	}
}

func TestDemoClient_DistinctPairsVary(t *testing.T) {
	c := NewDemoClient(clock.NewMock())

	halls := []models.Coordinates{
		{Latitude: 52.48, Longitude: 13.36},
		{Latitude: 48.13, Longitude: 11.58},
		{Latitude: 53.55, Longitude: 9.99},
		{Latitude: 50.94, Longitude: 6.96},
	}

	durations := make(map[int]bool)
	for _, hall := range halls {
		result, err := c.CalculateTravelTime(context.Background(), demoHome, hall, interfaces.TravelTimeOptions{})
		require.NoError(t, err)
		durations[result.DurationMinutes] = true
	}

	assert.Greater(t, len(durations), 1, "different halls should not all share one duration")
}

func TestDemoClient_AnchorsToTargetArrival(t *testing.T) {
	c := NewDemoClient(clock.NewMock())

	target := time.Date(2025, 1, 18, 13, 45, 0, 0, time.UTC)
	result, err := c.CalculateTravelTime(context.Background(), demoHome, demoHall, interfaces.TravelTimeOptions{TargetArrivalTime: &target})
	require.NoError(t, err)

	assert.True(t, result.ArrivalTime.Equal(target))
	wantDeparture := target.Add(-time.Duration(result.DurationMinutes) * time.Minute)
	assert.True(t, result.DepartureTime.Equal(wantDeparture))
}

func TestDemoClient_IsConfigured(t *testing.T) {
	assert.True(t, NewDemoClient(clock.NewMock()).IsConfigured())
}
