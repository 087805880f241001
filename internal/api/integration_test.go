package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jdelgado/metrovoice/internal/alerts"
	"github.com/jdelgado/metrovoice/internal/api"
	"github.com/jdelgado/metrovoice/internal/config"
	"github.com/jdelgado/metrovoice/internal/timetable"
	"github.com/jdelgado/metrovoice/internal/wmata"
)

// ---------------------------------------------------------------------------
// Mock providers
// ---------------------------------------------------------------------------

type mockTimetableProvider struct {
	station    *timetable.StationTimetable
	stationErr error
	stop       *timetable.StopTimetable
	stopErr    error
}

func (m *mockTimetableProvider) StationTimetable(ctx context.Context, query string) (*timetable.StationTimetable, error) {
	if m.stationErr != nil {
		return nil, m.stationErr
	}
	return m.station, nil
}

func (m *mockTimetableProvider) StopTimetable(ctx context.Context, query string) (*timetable.StopTimetable, error) {
	if m.stopErr != nil {
		return nil, m.stopErr
	}
	return m.stop, nil
}

type mockAlertProvider struct {
	alerts []alerts.ServiceAlert
	err    error

	lastRoutes []string
}

func (m *mockAlertProvider) Alerts(ctx context.Context, routes []string) ([]alerts.ServiceAlert, error) {
	m.lastRoutes = routes
	return m.alerts, m.err
}

type mockIncidentProvider struct {
	rail []wmata.Incident
	bus  []wmata.BusIncident
	err  error
}

func (m *mockIncidentProvider) RailIncidents(ctx context.Context) ([]wmata.Incident, error) {
	return m.rail, m.err
}

func (m *mockIncidentProvider) BusIncidents(ctx context.Context) ([]wmata.BusIncident, error) {
	return m.bus, m.err
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func newTestServer(t *testing.T, timetables *mockTimetableProvider, alertSvc *mockAlertProvider) *httptest.Server {
	t.Helper()

	incidents := &mockIncidentProvider{
		rail: []wmata.Incident{{IncidentID: "1", LinesAffected: "RD;"}},
		bus:  []wmata.BusIncident{{IncidentID: "2", RoutesAffected: []string{"31"}}},
	}

	cfg := &config.Config{HTTPTimeout: 5 * time.Second}
	router := api.NewRouter(cfg, timetables, alertSvc, incidents)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func defaultTimetables() *mockTimetableProvider {
	return &mockTimetableProvider{
		station: &timetable.StationTimetable{
			StationCode: "A01",
			StationName: "Metro Center",
			Predictions: []wmata.Prediction{
				{Line: "RD", Destination: "Glenmont", Min: "BRD"},
				{Line: "RD", Destination: "Shady Grove", Min: "5"},
			},
			Incidents: []wmata.Incident{
				{IncidentID: "1", LinesAffected: "RD; OR;", Description: "Single tracking"},
			},
		},
		stop: &timetable.StopTimetable{
			StopID:   "3004076",
			StopName: "Wisconsin Ave + M St",
			Predictions: []wmata.BusPrediction{
				{RouteID: "31", DirectionText: "North", Minutes: 4},
			},
		},
	}
}

func get(t *testing.T, server *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return m
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Errorf("status = %d, want %d", resp.StatusCode, want)
	}
}

func assertField(t *testing.T, body map[string]any, field string) {
	t.Helper()
	if _, ok := body[field]; !ok {
		t.Errorf("missing field %q in response: %v", field, body)
	}
}

// ---------------------------------------------------------------------------
// Health & root
// ---------------------------------------------------------------------------

func TestHealth(t *testing.T) {
	srv := newTestServer(t, defaultTimetables(), &mockAlertProvider{})

	resp := get(t, srv, "/health")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	assertField(t, body, "status")
	assertField(t, body, "uptime")

	if body["status"] != "OK" {
		t.Errorf("status = %v, want OK", body["status"])
	}
}

func TestAPIRoot(t *testing.T) {
	srv := newTestServer(t, defaultTimetables(), &mockAlertProvider{})

	resp := get(t, srv, "/api")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	assertField(t, body, "endpoints")
}

// ---------------------------------------------------------------------------
// Rail timetable
// ---------------------------------------------------------------------------

func TestRailTimetable(t *testing.T) {
	srv := newTestServer(t, defaultTimetables(), &mockAlertProvider{})

	resp := get(t, srv, "/api/rail/metro%20center")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	if body["status"] != "ok" {
		t.Fatalf("status = %v, body %v", body["status"], body)
	}

	tt, ok := body["timetable"].(map[string]any)
	if !ok {
		t.Fatalf("missing timetable object: %v", body)
	}
	if tt["station_name"] != "Metro Center" {
		t.Errorf("station_name = %v", tt["station_name"])
	}
	predictions, ok := tt["predictions"].([]any)
	if !ok || len(predictions) != 2 {
		t.Errorf("predictions = %v, want 2 entries", tt["predictions"])
	}
}

func TestRailTimetableNotFound(t *testing.T) {
	provider := defaultTimetables()
	provider.stationErr = timetable.ErrStationNotFound
	srv := newTestServer(t, provider, &mockAlertProvider{})

	resp := get(t, srv, "/api/rail/zzzznotastation")
	assertStatus(t, resp, http.StatusNotFound)

	body := decodeBody(t, resp)
	if body["status"] != "not_found" {
		t.Errorf("status = %v, want not_found", body["status"])
	}
}

func TestRailTimetableUpstreamFailure(t *testing.T) {
	provider := defaultTimetables()
	provider.stationErr = errors.New("reference feed unreachable")
	srv := newTestServer(t, provider, &mockAlertProvider{})

	resp := get(t, srv, "/api/rail/metro%20center")
	assertStatus(t, resp, http.StatusBadGateway)

	body := decodeBody(t, resp)
	if body["status"] != "upstream_failure" {
		t.Errorf("status = %v, want upstream_failure", body["status"])
	}
}

// ---------------------------------------------------------------------------
// Bus timetable
// ---------------------------------------------------------------------------

func TestBusTimetable(t *testing.T) {
	srv := newTestServer(t, defaultTimetables(), &mockAlertProvider{})

	resp := get(t, srv, "/api/bus/3004076")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	tt, ok := body["timetable"].(map[string]any)
	if !ok {
		t.Fatalf("missing timetable object: %v", body)
	}
	if tt["stop_name"] != "Wisconsin Ave + M St" {
		t.Errorf("stop_name = %v", tt["stop_name"])
	}
}

func TestBusTimetableNotFound(t *testing.T) {
	provider := defaultTimetables()
	provider.stopErr = timetable.ErrStopNotFound
	srv := newTestServer(t, provider, &mockAlertProvider{})

	resp := get(t, srv, "/api/bus/nonsense")
	assertStatus(t, resp, http.StatusNotFound)
}

// ---------------------------------------------------------------------------
// Incident listings
// ---------------------------------------------------------------------------

func TestRailIncidentsListing(t *testing.T) {
	srv := newTestServer(t, defaultTimetables(), &mockAlertProvider{})

	resp := get(t, srv, "/api/incidents/rail")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1", body["count"])
	}
}

func TestBusIncidentsListing(t *testing.T) {
	srv := newTestServer(t, defaultTimetables(), &mockAlertProvider{})

	resp := get(t, srv, "/api/incidents/bus")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	assertField(t, body, "incidents")
}

// ---------------------------------------------------------------------------
// Alerts
// ---------------------------------------------------------------------------

func TestAlerts(t *testing.T) {
	alertSvc := &mockAlertProvider{
		alerts: []alerts.ServiceAlert{
			{ID: "a", Routes: []string{"RD"}, Header: "Single tracking"},
		},
	}
	srv := newTestServer(t, defaultTimetables(), alertSvc)

	resp := get(t, srv, "/api/alerts?routes=RD,BL")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1", body["count"])
	}
	if len(alertSvc.lastRoutes) != 2 {
		t.Errorf("routes passed to provider = %v, want [RD BL]", alertSvc.lastRoutes)
	}
}

func TestAlertsUpstreamFailure(t *testing.T) {
	alertSvc := &mockAlertProvider{err: errors.New("feed down")}
	srv := newTestServer(t, defaultTimetables(), alertSvc)

	resp := get(t, srv, "/api/alerts")
	assertStatus(t, resp, http.StatusBadGateway)
}
