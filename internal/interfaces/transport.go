package interfaces

import (
	"context"
	"time"

	"traveltime-service/internal/models"
)

//go:generate mockgen -package=mock -source=transport.go -destination=mock/transport.go

// TravelTimeOptions carries optional parameters for a travel-time query.
type TravelTimeOptions struct {
	// TargetArrivalTime, when set, asks the planner for the connection
	// arriving latest without being later than this instant.
	TargetArrivalTime *time.Time
}

// TransportClient is the external journey-planner collaborator.
type TransportClient interface {
	// CalculateTravelTime returns the best connection from one coordinate
	// pair to another. Errors are transient from the caller's perspective
	// and subject to the resolver's retry policy.
	CalculateTravelTime(ctx context.Context, from, to models.Coordinates, opts TravelTimeOptions) (*models.TravelTimeResult, error)
	// IsConfigured reports whether the provider can serve requests at all.
	IsConfigured() bool
}
