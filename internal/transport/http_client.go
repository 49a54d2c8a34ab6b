// Package transport provides journey-planner clients: an HTTP client for the
// production backend and a deterministic demo client for offline use.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"traveltime-service/internal/config"
	"traveltime-service/internal/interfaces"
	"traveltime-service/internal/models"
)

// Ensure HTTPClient implements interfaces.TransportClient
var _ interfaces.TransportClient = (*HTTPClient)(nil)

// HTTPClient calls an external journey-planner REST API. The per-request
// timeout is bounded by the configured client timeout; retries are the
// resolver's responsibility.
type HTTPClient struct {
	session *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewHTTPClient creates a journey-planner client from provider config
func NewHTTPClient(cfg *config.ProviderConfig, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		session: &http.Client{Timeout: cfg.RequestTimeout.Std()},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// IsConfigured reports whether a backend URL is set
func (c *HTTPClient) IsConfigured() bool {
	return c.baseURL != ""
}

type journeyResponse struct {
	DurationMinutes *int      `json:"durationMinutes"`
	DepartureTime   time.Time `json:"departureTime"`
	ArrivalTime     time.Time `json:"arrivalTime"`
	Transfers       int       `json:"transfers"`
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("journey planner returned %d: %s", e.Code, e.Body)
}

// CalculateTravelTime requests the best connection between two coordinates.
// When a target arrival time is set, the planner is asked for the connection
// arriving soonest without being late.
func (c *HTTPClient) CalculateTravelTime(ctx context.Context, from, to models.Coordinates, opts interfaces.TravelTimeOptions) (*models.TravelTimeResult, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("journey planner base URL is not configured")
	}

	query := url.Values{}
	query.Set("fromLat", strconv.FormatFloat(from.Latitude, 'f', -1, 64))
	query.Set("fromLon", strconv.FormatFloat(from.Longitude, 'f', -1, 64))
	query.Set("toLat", strconv.FormatFloat(to.Latitude, 'f', -1, 64))
	query.Set("toLon", strconv.FormatFloat(to.Longitude, 'f', -1, 64))
	if opts.TargetArrivalTime != nil {
		query.Set("arriveBy", opts.TargetArrivalTime.Format(time.RFC3339))
	}

	endpoint := c.baseURL + "/v1/journeys?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("journey planner request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var journey journeyResponse
	if err := json.NewDecoder(resp.Body).Decode(&journey); err != nil {
		// Malformed responses are treated like transient failures upstream.
		return nil, fmt.Errorf("decode journey planner response: %w", err)
	}

	if journey.DurationMinutes == nil || *journey.DurationMinutes < 0 {
		return nil, fmt.Errorf("journey planner response missing duration")
	}

	return &models.TravelTimeResult{
		DurationMinutes: *journey.DurationMinutes,
		DepartureTime:   journey.DepartureTime,
		ArrivalTime:     journey.ArrivalTime,
		Transfers:       journey.Transfers,
	}, nil
}
