package api

import (
	"net/http"
	"time"

	"github.com/jdelgado/metrovoice/internal/api/handlers"
	"github.com/jdelgado/metrovoice/internal/config"
)

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(
	cfg *config.Config,
	timetables handlers.TimetableProvider,
	alerts handlers.AlertProvider,
	incidents handlers.IncidentProvider,
) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	rootHandler := handlers.NewRootHandler()
	timetableHandler := handlers.NewTimetableHandler(timetables)
	alertsHandler := handlers.NewAlertsHandler(alerts)
	incidentsHandler := handlers.NewIncidentsHandler(incidents)

	// Core routes
	mux.HandleFunc("GET /", rootHandler.Index)
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Timetable routes
	mux.HandleFunc("GET /api/rail/{station}", timetableHandler.GetStationTimetable)
	mux.HandleFunc("GET /api/bus/{stop}", timetableHandler.GetStopTimetable)

	// Incident and alert routes
	mux.HandleFunc("GET /api/incidents/rail", incidentsHandler.GetRailIncidents)
	mux.HandleFunc("GET /api/incidents/bus", incidentsHandler.GetBusIncidents)
	mux.HandleFunc("GET /api/alerts", alertsHandler.GetAlerts)

	// Give in-flight upstream calls a chance to finish before the request
	// itself is cut off.
	requestTimeout := cfg.HTTPTimeout + 5*time.Second

	// Apply middleware stack
	handler := Chain(mux,
		Recovery,
		Logging,
		CORS,
		Timeout(requestTimeout),
	)

	return handler
}
