package timetable

import (
	"math"
	"sort"
	"strconv"

	"github.com/jdelgado/metrovoice/internal/wmata"
)

// Minute state markers used by the prediction feed for trains that are at
// or nearly at the platform.
const (
	minBoarding = "BRD"
	minArriving = "ARR"
)

// Non-passenger sentinels. The feed marks out-of-service trains with these
// exact strings; "NoPssenger" is the feed's own truncation, not a typo here.
var (
	sentinelLines        = map[string]bool{"None": true, "No": true}
	sentinelDestinations = map[string]bool{"NoPssenger": true, "Train": true}
)

// MergePredictions combines the prediction lists of a station's platforms
// into one passenger-facing arrival board: concatenated, sorted soonest
// first, with non-passenger entries dropped. Boarding trains sort before
// arriving trains, which sort before any numeric minute value; entries at
// the same minute keep their input order. Inputs are not modified. Pass nil
// for secondary when the station has a single platform.
func MergePredictions(primary, secondary []wmata.Prediction) []wmata.Prediction {
	merged := make([]wmata.Prediction, 0, len(primary)+len(secondary))
	for _, p := range append(append([]wmata.Prediction{}, primary...), secondary...) {
		if isSentinel(p) {
			continue
		}
		merged = append(merged, p)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return minuteRank(merged[i].Min) < minuteRank(merged[j].Min)
	})

	return merged
}

func isSentinel(p wmata.Prediction) bool {
	return sentinelLines[p.Line] ||
		sentinelDestinations[p.Destination] ||
		sentinelDestinations[p.DestinationName]
}

// minuteRank maps a Min value onto a sortable integer. Unparseable values
// (empty string, "---") rank after every real arrival.
func minuteRank(m string) int {
	switch m {
	case minBoarding:
		return -2
	case minArriving:
		return -1
	}
	if n, err := strconv.Atoi(m); err == nil {
		return n
	}
	return math.MaxInt
}
