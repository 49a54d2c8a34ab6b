// Package batch enriches lists of assignment-like items with travel times
// and applies the user's maximum-travel-time filter. Targets are deduplicated
// by hall id so a round of games at one venue costs one resolution, and each
// resolution is an isolated failure domain.
package batch

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"traveltime-service/internal/config"
	"traveltime-service/internal/models"
	"traveltime-service/internal/resolver"
)

// Enriched pairs an input item with its travel-time annotation.
// TravelTimeMinutes is nil when the travel time could not be determined,
// whether because of a failed resolution or an inapplicable target.
type Enriched[T any] struct {
	Item              T
	TravelTimeMinutes *int
	Status            resolver.Status
	Err               error
}

// Result carries the full enriched list and the filtered view of it.
type Result[T any] struct {
	Enriched []Enriched[T]
	Filtered []Enriched[T]
}

// Engine fans resolutions out across unique halls and merges results back.
type Engine struct {
	resolver *resolver.Resolver
	cfg      *config.TransportConfig
	logger   *zap.Logger
}

// NewEngine creates a batch engine on top of a resolver
func NewEngine(res *resolver.Resolver, cfg *config.TransportConfig, logger *zap.Logger) *Engine {
	return &Engine{
		resolver: res,
		cfg:      cfg,
		logger:   logger,
	}
}

// EnrichAndFilter enriches items with travel times and applies the threshold
// filter. The extractor projects an item to its hall target; returning nil
// marks the item as having no target, which keeps it filter-exempt.
func EnrichAndFilter[T any](ctx context.Context, e *Engine, associationID string, items []T, extract func(T) *models.HallTarget) Result[T] {
	enriched := Enrich(ctx, e, associationID, items, extract)
	return Result[T]{
		Enriched: enriched,
		Filtered: Filter(e, enriched),
	}
}

// Enrich resolves travel times for all items, one resolution per unique hall
// id. Resolutions run concurrently; a failure for one hall never affects the
// others. Results are joined back onto items by hall id, so the output order
// is the input order regardless of completion order.
func Enrich[T any](ctx context.Context, e *Engine, associationID string, items []T, extract func(T) *models.HallTarget) []Enriched[T] {
	targets := make([]*models.HallTarget, len(items))
	for i, item := range items {
		targets[i] = extract(item)
	}

	// Deduplicate by hall id, preserving first-seen order.
	seen := make(map[string]*models.HallTarget)
	order := make([]string, 0, len(targets))
	for _, t := range targets {
		if t == nil || t.ID == "" {
			continue
		}
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = t
		order = append(order, t.ID)
	}

	outcomes := e.resolveAll(ctx, associationID, seen, order)

	enriched := make([]Enriched[T], len(items))
	for i, item := range items {
		enriched[i] = Enriched[T]{Item: item, Status: resolver.StatusNotApplicable}

		t := targets[i]
		if t == nil || t.ID == "" {
			continue
		}

		outcome := outcomes[t.ID]
		enriched[i].Status = outcome.Status
		enriched[i].Err = outcome.Err
		if outcome.Status == resolver.StatusResolved && outcome.Result != nil {
			minutes := outcome.Result.DurationMinutes
			enriched[i].TravelTimeMinutes = &minutes
		}
	}

	return enriched
}

// Filter applies the fail-open maximum-travel-time predicate: items without
// a determined travel time are always kept, and a disabled filter keeps all.
func Filter[T any](e *Engine, enriched []Enriched[T]) []Enriched[T] {
	if !e.cfg.FilterEnabled {
		return enriched
	}

	kept := make([]Enriched[T], 0, len(enriched))
	for _, item := range enriched {
		if item.TravelTimeMinutes == nil || *item.TravelTimeMinutes <= e.cfg.MaxTravelTimeMinutes {
			kept = append(kept, item)
		}
	}
	return kept
}

// resolveAll resolves every unique target concurrently and collects outcomes
// by hall id.
func (e *Engine) resolveAll(ctx context.Context, associationID string, targets map[string]*models.HallTarget, order []string) map[string]resolver.Outcome {
	type hallOutcome struct {
		id      string
		outcome resolver.Outcome
	}

	resultsChan := make(chan hallOutcome, len(order))
	var wg sync.WaitGroup

	for _, id := range order {
		target := targets[id]

		wg.Add(1)
		go func() {
			defer wg.Done()

			outcome := e.resolver.Resolve(ctx, resolver.Request{
				HallID:        target.ID,
				Coordinates:   target.Coordinates,
				ReferenceTime: target.ReferenceTime,
				AssociationID: associationID,
			})
			resultsChan <- hallOutcome{id: target.ID, outcome: outcome}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	outcomes := make(map[string]resolver.Outcome, len(order))
	for entry := range resultsChan {
		if entry.outcome.Status == resolver.StatusFailed {
			e.logger.Warn("Travel time resolution failed",
				zap.String("hall_id", entry.id),
				zap.Error(entry.outcome.Err))
		}
		outcomes[entry.id] = entry.outcome
	}

	return outcomes
}
