// Package timetable aggregates reference data, live predictions, and
// incidents into one answer per transit query.
package timetable

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jdelgado/metrovoice/internal/matcher"
	"github.com/jdelgado/metrovoice/internal/wmata"
)

// Lookup failures that are normal user-facing outcomes, distinct from an
// unreachable or broken upstream feed.
var (
	ErrStationNotFound = errors.New("no station matches the query")
	ErrStopNotFound    = errors.New("no usable stop id in the query")
)

// RailFeed is the subset of the WMATA client the rail path consumes.
type RailFeed interface {
	Stations(ctx context.Context) ([]wmata.Station, error)
	StationPredictions(ctx context.Context, code string) ([]wmata.Prediction, error)
	RailIncidents(ctx context.Context) ([]wmata.Incident, error)
}

// BusFeed is the subset of the WMATA client the bus path consumes.
type BusFeed interface {
	StopPredictions(ctx context.Context, stopID string) (string, []wmata.BusPrediction, error)
}

// StationTimetable is the aggregated answer for a rail query. The
// Unavailable flags distinguish "the feed said nothing is coming" from
// "the feed could not be reached"; callers word their response differently
// for each.
type StationTimetable struct {
	StationCode            string             `json:"station_code"`
	StationName            string             `json:"station_name"`
	Predictions            []wmata.Prediction `json:"predictions"`
	PredictionsUnavailable bool               `json:"predictions_unavailable"`
	Incidents              []wmata.Incident   `json:"incidents"`
	IncidentsUnavailable   bool               `json:"incidents_unavailable"`
}

// StopTimetable is the aggregated answer for a bus stop query. Incidents is
// always empty for now: deriving route ids from the bus incident payload is
// an unresolved extension point, and guessing it would silently misfilter.
type StopTimetable struct {
	StopID      string                `json:"stop_id"`
	StopName    string                `json:"stop_name"`
	Predictions []wmata.BusPrediction `json:"predictions"`
	Incidents   []wmata.Incident      `json:"incidents"`
}

// Aggregator runs the resolve/fetch/merge pipeline. It holds no mutable
// state; every query fetches its own reference data.
type Aggregator struct {
	rail RailFeed
	bus  BusFeed
}

// NewAggregator creates an aggregator over the given feeds.
func NewAggregator(rail RailFeed, bus BusFeed) *Aggregator {
	return &Aggregator{rail: rail, bus: bus}
}

// StationTimetable answers a rail query: resolve the spoken name, fetch
// predictions for the station's platform (both platforms when the station
// has a paired one), merge them, and attach incidents relevant to the
// station's lines. A reference-feed failure is returned as an error; a
// prediction or incident fetch failure degrades that section to empty and
// flags it unavailable.
func (a *Aggregator) StationTimetable(ctx context.Context, query string) (*StationTimetable, error) {
	stations, err := a.rail.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading station reference data: %w", err)
	}

	station, ok := matcher.Resolve(query, stations)
	if !ok {
		return nil, ErrStationNotFound
	}

	result := &StationTimetable{
		StationCode: station.Code,
		StationName: station.Name,
	}

	// The three remaining fetches are independent of each other; only the
	// merge below needs their results. Each goroutine owns its own slots,
	// so no locking is needed.
	var primary, secondary []wmata.Prediction
	var incidents []wmata.Incident
	var primaryErr, secondaryErr, incidentsErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		primary, primaryErr = a.rail.StationPredictions(gctx, station.Code)
		return nil
	})
	if station.StationTogether1 != "" {
		g.Go(func() error {
			secondary, secondaryErr = a.rail.StationPredictions(gctx, station.StationTogether1)
			return nil
		})
	}
	g.Go(func() error {
		incidents, incidentsErr = a.rail.RailIncidents(gctx)
		return nil
	})
	_ = g.Wait()

	if primaryErr != nil {
		log.Warn().Err(primaryErr).Str("station", station.Code).Msg("prediction feed unavailable")
		primary = nil
		result.PredictionsUnavailable = true
	}
	if secondaryErr != nil {
		log.Warn().Err(secondaryErr).Str("station", station.StationTogether1).Msg("prediction feed unavailable")
		secondary = nil
		result.PredictionsUnavailable = true
	}
	if incidentsErr != nil {
		log.Warn().Err(incidentsErr).Msg("incident feed unavailable")
		incidents = nil
		result.IncidentsUnavailable = true
	}

	result.Predictions = MergePredictions(primary, secondary)
	result.Incidents = RelevantIncidents(station.LineCodes(), incidents)
	return result, nil
}

// StopTimetable answers a bus query. The stop id arrives from voice
// transcription, so every non-digit is stripped before use ("stop
// #3004-076" becomes "3004076").
func (a *Aggregator) StopTimetable(ctx context.Context, query string) (*StopTimetable, error) {
	stopID := SanitizeStopID(query)
	if stopID == "" {
		return nil, ErrStopNotFound
	}

	stopName, predictions, err := a.bus.StopPredictions(ctx, stopID)
	if err != nil {
		return nil, fmt.Errorf("loading stop predictions: %w", err)
	}

	return &StopTimetable{
		StopID:      stopID,
		StopName:    stopName,
		Predictions: predictions,
		Incidents:   nil,
	}, nil
}

// SanitizeStopID strips everything but digits from a spoken stop id.
func SanitizeStopID(query string) string {
	var b strings.Builder
	for _, r := range query {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
