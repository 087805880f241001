package handlers

import (
	"context"

	"github.com/jdelgado/metrovoice/internal/alerts"
	"github.com/jdelgado/metrovoice/internal/timetable"
	"github.com/jdelgado/metrovoice/internal/wmata"
)

// TimetableProvider abstracts the aggregation pipeline for testability.
type TimetableProvider interface {
	StationTimetable(ctx context.Context, query string) (*timetable.StationTimetable, error)
	StopTimetable(ctx context.Context, query string) (*timetable.StopTimetable, error)
}

// AlertProvider abstracts the service alerts data source.
type AlertProvider interface {
	Alerts(ctx context.Context, routes []string) ([]alerts.ServiceAlert, error)
}

// IncidentProvider abstracts the raw incident feeds.
type IncidentProvider interface {
	RailIncidents(ctx context.Context) ([]wmata.Incident, error)
	BusIncidents(ctx context.Context) ([]wmata.BusIncident, error)
}
