package timetable

import (
	"strings"

	"github.com/jdelgado/metrovoice/internal/wmata"
)

// RelevantIncidents returns the incidents whose affected lines intersect
// lineCodes, in feed order. The LinesAffected field is a delimiter-joined
// string ("RD; BL;"); an incident matches when any of its tokens equals any
// requested code. An empty lineCodes always yields an empty result.
func RelevantIncidents(lineCodes []string, incidents []wmata.Incident) []wmata.Incident {
	if len(lineCodes) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(lineCodes))
	for _, code := range lineCodes {
		wanted[code] = true
	}

	var relevant []wmata.Incident
	for _, incident := range incidents {
		for _, line := range affectedLines(incident.LinesAffected) {
			if wanted[line] {
				relevant = append(relevant, incident)
				break
			}
		}
	}
	return relevant
}

// affectedLines tokenizes a LinesAffected value. The feed separates codes
// with semicolons and is inconsistent about trailing ones, so split on both
// semicolons and whitespace and drop empties.
func affectedLines(joined string) []string {
	return strings.FieldsFunc(joined, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\t'
	})
}
