package httpserver

import (
	"time"

	"traveltime-service/internal/models"
)

// ResolveRequest asks for a single hall's travel time
type ResolveRequest struct {
	HallID        string              `json:"hall_id"`
	Coordinates   *models.Coordinates `json:"coordinates,omitempty"`
	ReferenceTime *time.Time          `json:"reference_time,omitempty"`
	AssociationID string              `json:"association_id,omitempty"`
}

// ResolveResponse carries one resolution outcome
type ResolveResponse struct {
	Status     string                   `json:"status"`
	TravelTime *models.TravelTimeResult `json:"travel_time,omitempty"`
	Reason     string                   `json:"reason,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// BatchItem is one assignment-like entry in a batch request
type BatchItem struct {
	ID            string              `json:"id"`
	HallID        string              `json:"hall_id"`
	Coordinates   *models.Coordinates `json:"coordinates,omitempty"`
	ReferenceTime *time.Time          `json:"reference_time,omitempty"`
}

// BatchRequest asks for travel times across a list of items
type BatchRequest struct {
	AssociationID string      `json:"association_id,omitempty"`
	Items         []BatchItem `json:"items"`
}

// BatchItemResponse is the per-item annotation in a batch response
type BatchItemResponse struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	TravelTimeMinutes *int   `json:"travel_time_minutes,omitempty"`
}

// BatchResponse carries the enriched list plus the filtered id set
type BatchResponse struct {
	Items       []BatchItemResponse `json:"items"`
	FilteredIDs []string            `json:"filtered_ids"`
}

// RefreshRequest invalidates a cached travel time and resolves it fresh
type RefreshRequest struct {
	HallID        string              `json:"hall_id"`
	Coordinates   *models.Coordinates `json:"coordinates,omitempty"`
	ReferenceTime *time.Time          `json:"reference_time,omitempty"`
	AssociationID string              `json:"association_id,omitempty"`
}
