// Package matcher resolves free-text station names against the rail
// reference list. It is pure: no network calls, no state.
package matcher

import (
	"strings"

	"github.com/jdelgado/metrovoice/internal/wmata"
)

// Resolve finds the station best matching a spoken query. A substring pass
// runs first: the first station (in feed order) whose name contains the
// query, or whose name is contained by the query, wins outright. Only when
// that finds nothing does the fuzzy pass score every station and take the
// highest one at or above SimilarityThreshold. The second return is false
// when neither pass produces a station.
func Resolve(query string, stations []wmata.Station) (wmata.Station, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return wmata.Station{}, false
	}

	if station, ok := partial(query, stations); ok {
		return station, ok
	}
	return fuzzy(query, stations)
}

func partial(query string, stations []wmata.Station) (wmata.Station, bool) {
	for _, station := range stations {
		name := strings.ToLower(station.Name)
		if strings.Contains(name, query) || strings.Contains(query, name) {
			return station, true
		}
	}
	return wmata.Station{}, false
}

func fuzzy(query string, stations []wmata.Station) (wmata.Station, bool) {
	best := -1
	var match wmata.Station
	for _, station := range stations {
		// Strictly-greater keeps the first station at equal top score.
		if score := Similarity(query, station.Name); score > best {
			best = score
			match = station
		}
	}
	if best < SimilarityThreshold {
		return wmata.Station{}, false
	}
	return match, true
}
