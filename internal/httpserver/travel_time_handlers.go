package httpserver

import (
	"net/http"

	"traveltime-service/internal/batch"
	"traveltime-service/internal/models"
	"traveltime-service/internal/resolver"
)

// handleResolve handles single travel-time resolution requests
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.HallID == "" {
		s.writeErrorResponse(w, "Missing required field: hall_id", http.StatusBadRequest)
		return
	}

	outcome := s.resolver.Resolve(r.Context(), resolver.Request{
		HallID:        req.HallID,
		Coordinates:   req.Coordinates,
		ReferenceTime: req.ReferenceTime,
		AssociationID: req.AssociationID,
	})

	s.writeResponse(w, resolveResponseFrom(outcome))
}

// handleBatch handles batch enrich-and-filter requests
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result := batch.EnrichAndFilter(r.Context(), s.engine, req.AssociationID, req.Items, func(item BatchItem) *models.HallTarget {
		if item.HallID == "" {
			return nil
		}
		return &models.HallTarget{
			ID:            item.HallID,
			Coordinates:   item.Coordinates,
			ReferenceTime: item.ReferenceTime,
		}
	})

	items := make([]BatchItemResponse, len(result.Enriched))
	for i, e := range result.Enriched {
		items[i] = BatchItemResponse{
			ID:                e.Item.ID,
			Status:            string(e.Status),
			TravelTimeMinutes: e.TravelTimeMinutes,
		}
	}

	filteredIDs := make([]string, len(result.Filtered))
	for i, e := range result.Filtered {
		filteredIDs[i] = e.Item.ID
	}

	s.writeResponse(w, &BatchResponse{Items: items, FilteredIDs: filteredIDs})
}

// handleRefresh invalidates the cached value and resolves it fresh
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.HallID == "" {
		s.writeErrorResponse(w, "Missing required field: hall_id", http.StatusBadRequest)
		return
	}

	day := s.resolver.Day(req.ReferenceTime)

	if err := s.resolver.Remove(r.Context(), req.HallID, day); err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	outcome := s.resolver.Resolve(r.Context(), resolver.Request{
		HallID:        req.HallID,
		Coordinates:   req.Coordinates,
		ReferenceTime: req.ReferenceTime,
		AssociationID: req.AssociationID,
	})

	s.writeResponse(w, resolveResponseFrom(outcome))
}

func resolveResponseFrom(outcome resolver.Outcome) *ResolveResponse {
	resp := &ResolveResponse{
		Status:     string(outcome.Status),
		TravelTime: outcome.Result,
		Reason:     outcome.Reason,
	}
	if outcome.Err != nil {
		resp.Error = outcome.Err.Error()
	}
	return resp
}
