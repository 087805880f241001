// Package wmata is a client for the WMATA public API feeds. It fetches and
// decodes; it does no retrying, no caching, and no interpretation of the
// data beyond JSON decoding.
package wmata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client fetches the reference, prediction, and incident feeds.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a client for the given API base URL and key.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Stations fetches the rail station reference list.
func (c *Client) Stations(ctx context.Context) ([]Station, error) {
	var result stationsResponse
	if err := c.getJSON(ctx, "/Rail.svc/json/jStations", nil, &result); err != nil {
		return nil, fmt.Errorf("fetching stations: %w", err)
	}
	return result.Stations, nil
}

// StationPredictions fetches upcoming rail arrivals for one platform code.
func (c *Client) StationPredictions(ctx context.Context, code string) ([]Prediction, error) {
	var result predictionsResponse
	path := "/StationPrediction.svc/json/GetPrediction/" + url.PathEscape(code)
	if err := c.getJSON(ctx, path, nil, &result); err != nil {
		return nil, fmt.Errorf("fetching predictions for %s: %w", code, err)
	}
	return result.Trains, nil
}

// RailIncidents fetches the active rail incident feed.
func (c *Client) RailIncidents(ctx context.Context) ([]Incident, error) {
	var result incidentsResponse
	if err := c.getJSON(ctx, "/Incidents.svc/json/Incidents", nil, &result); err != nil {
		return nil, fmt.Errorf("fetching rail incidents: %w", err)
	}
	return result.Incidents, nil
}

// BusIncidents fetches the active bus incident feed.
func (c *Client) BusIncidents(ctx context.Context) ([]BusIncident, error) {
	var result busIncidentsResponse
	if err := c.getJSON(ctx, "/Incidents.svc/json/BusIncidents", nil, &result); err != nil {
		return nil, fmt.Errorf("fetching bus incidents: %w", err)
	}
	return result.BusIncidents, nil
}

// StopPredictions fetches upcoming bus arrivals for a numeric stop id,
// returning the stop's display name alongside the predictions.
func (c *Client) StopPredictions(ctx context.Context, stopID string) (string, []BusPrediction, error) {
	params := url.Values{}
	params.Set("StopID", stopID)

	var result busPredictionsResponse
	if err := c.getJSON(ctx, "/NextBusService.svc/json/jPredictions", params, &result); err != nil {
		return "", nil, fmt.Errorf("fetching bus predictions for stop %s: %w", stopID, err)
	}
	return result.StopName, result.Predictions, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	apiURL := c.baseURL + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("api_key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
