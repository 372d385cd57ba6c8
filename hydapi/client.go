package hydapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public endpoint of the NVE hydrological API.
const DefaultBaseURL = "https://hydapi.nve.no/api/v1"

// hydapi.nve.no enforces a per-key request quota; stay well under it.
const (
	requestsPerSecond = 5
	requestBurst      = 5
)

// Client talks to the hydapi REST endpoints. The API key is passed per
// call, not stored on the client, so one client serves any credential.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a hydapi client with the given base URL and timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		logger:  logger,
	}
}

// FetchStations retrieves the full station catalog.
func (c *Client) FetchStations(ctx context.Context, apiKey string) ([]Station, error) {
	var payload stationsResponse
	if err := c.get(ctx, apiKey, c.baseURL+"/Stations", &payload); err != nil {
		return nil, err
	}
	c.logger.Info("fetched station catalog", "stations", len(payload.Data))
	return payload.Data, nil
}

// FetchObservations retrieves observation series for one station, parameter
// and reference-time range. The API may return several station groups; the
// caller decides which to use.
func (c *Client) FetchObservations(ctx context.Context, apiKey, stationID string, parameter int, referenceTime string) ([]Series, error) {
	q := url.Values{}
	q.Set("StationId", stationID)
	q.Set("Parameter", strconv.Itoa(parameter))
	q.Set("ResolutionTime", strconv.Itoa(ResolutionInstant))
	q.Set("ReferenceTime", referenceTime)

	var payload observationsResponse
	if err := c.get(ctx, apiKey, c.baseURL+"/Observations?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	c.logger.Info("fetched observations",
		"station", stationID,
		"parameter", parameter,
		"series", len(payload.Data),
	)
	return payload.Data, nil
}

func (c *Client) get(ctx context.Context, apiKey, rawURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request hydapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
