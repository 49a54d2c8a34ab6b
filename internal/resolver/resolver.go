// Package resolver orchestrates travel-time resolution: precondition checks,
// cache lookup, journey-planner calls with bounded retry, write-through, and
// single-flight de-duplication across concurrent callers sharing a cache key.
package resolver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"traveltime-service/internal/config"
	"traveltime-service/internal/daytype"
	"traveltime-service/internal/interfaces"
	"traveltime-service/internal/metrics"
	"traveltime-service/internal/models"
)

// Status is the terminal state of one resolution.
type Status string

const (
	// StatusResolved means a travel time was produced, from cache or network.
	StatusResolved Status = "resolved"
	// StatusFailed means the journey planner could not be reached within the
	// retry budget. Callers degrade their UI rather than block.
	StatusFailed Status = "failed"
	// StatusNotApplicable means a precondition was not met and no cache or
	// network access was attempted. Distinct from a failure.
	StatusNotApplicable Status = "not_applicable"
)

// Outcome is the result of a single resolution.
type Outcome struct {
	Status Status
	Result *models.TravelTimeResult
	Reason string // set for StatusNotApplicable
	Err    error  // set for StatusFailed
}

// Request identifies one hall to resolve a travel time for.
type Request struct {
	HallID        string
	Coordinates   *models.Coordinates
	ReferenceTime *time.Time
	AssociationID string
	// Day overrides the day type derived from ReferenceTime. Zero value
	// means derive it.
	Day models.DayType
}

// Resolver resolves travel times with cache-first, single-flight semantics.
type Resolver struct {
	cfg       *config.TransportConfig
	retry     config.RetryConfig
	keys      interfaces.KeyBuilder
	cache     interfaces.Cache
	transport interfaces.TransportClient
	group     singleflight.Group
	clock     clock.Clock
	logger    *zap.Logger
}

// New creates a resolver. The settings snapshot is passed in explicitly; the
// resolver reads no ambient state.
func New(cfg *config.TransportConfig, retry config.RetryConfig, keys interfaces.KeyBuilder, cache interfaces.Cache, transport interfaces.TransportClient, clk clock.Clock, logger *zap.Logger) *Resolver {
	return &Resolver{
		cfg:       cfg,
		retry:     retry,
		keys:      keys,
		cache:     cache,
		transport: transport,
		clock:     clk,
		logger:    logger,
	}
}

// Resolve produces a travel time for the given hall, or an explicit
// not-applicable / failed outcome. Concurrent calls for the same cache key
// share one underlying journey-planner call.
func (r *Resolver) Resolve(ctx context.Context, req Request) Outcome {
	if reason, ok := r.precondition(req); !ok {
		metrics.RecordResolution(string(StatusNotApplicable))
		return Outcome{Status: StatusNotApplicable, Reason: reason}
	}

	day := req.Day
	if day == "" {
		day = daytype.Classify(r.referenceOrNow(req))
	}

	homeHash := r.keys.HashLocation(*r.cfg.HomeLocation)
	key, err := r.keys.Build(req.HallID, homeHash, day)
	if err != nil {
		metrics.RecordResolution(string(StatusFailed))
		return Outcome{Status: StatusFailed, Err: fmt.Errorf("build cache key: %w", err)}
	}

	metrics.RecordCacheRequest()
	if entry, found := r.cache.Get(ctx, key); found {
		metrics.RecordResolution(string(StatusResolved))
		result := entry.Result
		return Outcome{Status: StatusResolved, Result: &result}
	}
	metrics.RecordCacheMiss()

	// The flight runs detached from the caller: a consumer that goes away
	// mid-resolution abandons its result, but the network call keeps going
	// so sibling callers are served and the cache write still lands.
	ch := r.group.DoChan(key, func() (interface{}, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.flightBudget())
		defer cancel()

		result, err := r.fetchWithRetry(flightCtx, req)
		if err != nil {
			return nil, err
		}
		r.cache.Set(flightCtx, key, *result)
		return result, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			metrics.RecordResolution(string(StatusFailed))
			return Outcome{Status: StatusFailed, Err: res.Err}
		}
		if res.Shared {
			metrics.RecordSingleFlightShared()
		}
		metrics.RecordResolution(string(StatusResolved))
		return Outcome{Status: StatusResolved, Result: res.Val.(*models.TravelTimeResult)}
	case <-ctx.Done():
		metrics.RecordResolution(string(StatusFailed))
		return Outcome{Status: StatusFailed, Err: ctx.Err()}
	}
}

// Day returns the day type a resolve without an explicit day will use for
// the given reference time, falling back to the resolver's clock when nil.
// Callers invalidating a cache slot derive the day here so they hit the same
// key the next Resolve will build.
func (r *Resolver) Day(ref *time.Time) models.DayType {
	if ref != nil {
		return daytype.Classify(*ref)
	}
	return daytype.Classify(r.clock.Now())
}

// Remove invalidates the cached value for (hall, day type), forcing the next
// Resolve to hit the journey planner again. Used for user-triggered refresh.
func (r *Resolver) Remove(ctx context.Context, hallID string, day models.DayType) error {
	if r.cfg.HomeLocation == nil {
		return fmt.Errorf("home location is not configured")
	}

	homeHash := r.keys.HashLocation(*r.cfg.HomeLocation)
	key, err := r.keys.Build(hallID, homeHash, day)
	if err != nil {
		return fmt.Errorf("build cache key: %w", err)
	}

	r.cache.Delete(ctx, key)
	r.group.Forget(key)
	return nil
}

// precondition returns a human-readable reason when resolution does not
// apply. These short-circuit before any cache or network access.
func (r *Resolver) precondition(req Request) (string, bool) {
	switch {
	case !r.cfg.EnabledFor(req.AssociationID):
		return "travel time feature is disabled", false
	case r.cfg.HomeLocation == nil:
		return "home location is not set", false
	case req.HallID == "":
		return "hall id is missing", false
	case req.Coordinates == nil:
		return "hall coordinates are unknown", false
	case !r.cfg.DemoMode && !r.transport.IsConfigured():
		return "journey planner is not configured", false
	}
	return "", true
}

func (r *Resolver) referenceOrNow(req Request) time.Time {
	if req.ReferenceTime != nil {
		return *req.ReferenceTime
	}
	return r.clock.Now()
}

// fetchWithRetry calls the journey planner with bounded exponential backoff.
// A per-attempt timeout inside the transport client counts as one failed
// attempt toward the budget.
func (r *Resolver) fetchWithRetry(ctx context.Context, req Request) (*models.TravelTimeResult, error) {
	var opts interfaces.TravelTimeOptions
	if req.ReferenceTime != nil {
		target := req.ReferenceTime.Add(-time.Duration(r.cfg.ArrivalBufferFor(req.AssociationID)) * time.Minute)
		opts.TargetArrivalTime = &target
	}

	backoff := r.retry.InitialBackoff.Std()
	var lastErr error

	for attempt := 1; attempt <= r.retry.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		metrics.RecordTransportAttempt()
		start := r.clock.Now()
		result, err := r.transport.CalculateTravelTime(ctx, *r.cfg.HomeLocation, *req.Coordinates, opts)
		metrics.ObserveTransportDuration(r.clock.Now().Sub(start))
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == r.retry.MaxAttempts {
			break
		}

		metrics.RecordTransportRetry()
		delay := r.jitter(backoff)
		r.logger.Warn("Journey planner call failed, retrying",
			zap.String("hall_id", req.HallID),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err))

		timer := r.clock.Timer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if backoff > r.retry.MaxBackoff.Std() {
			backoff = r.retry.MaxBackoff.Std()
		}
	}

	return nil, fmt.Errorf("travel time lookup failed after %d attempts: %w", r.retry.MaxAttempts, lastErr)
}

// jitter spreads backoff delays so callers retrying the same outage don't
// hit the backend in lockstep.
func (r *Resolver) jitter(d time.Duration) time.Duration {
	if r.retry.JitterFactor <= 0 {
		return d
	}
	spread := (rand.Float64()*2 - 1) * r.retry.JitterFactor
	return time.Duration(float64(d) * (1 + spread))
}

// flightBudget bounds a detached flight: every attempt plus every backoff at
// its ceiling, with headroom.
func (r *Resolver) flightBudget() time.Duration {
	perAttempt := r.cfg.Provider.RequestTimeout.Std() + r.retry.MaxBackoff.Std()
	return time.Duration(r.retry.MaxAttempts)*perAttempt + 5*time.Second
}
