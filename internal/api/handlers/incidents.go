package handlers

import "net/http"

type IncidentsHandler struct {
	provider IncidentProvider
}

func NewIncidentsHandler(provider IncidentProvider) *IncidentsHandler {
	return &IncidentsHandler{provider: provider}
}

// GetRailIncidents returns the full active rail incident feed, unfiltered.
// Line-relevance filtering happens on the station timetable path; this
// endpoint answers "what is going on across the system".
func (h *IncidentsHandler) GetRailIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := h.provider.RailIncidents(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"status": "upstream_failure",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"count":     len(incidents),
		"incidents": incidents,
	})
}

// GetBusIncidents returns the full active bus incident feed. Bus incidents
// are never attached to stop timetables because route relevance for a
// given stop is not derivable from the payload; the raw listing is the
// whole bus-incident surface.
func (h *IncidentsHandler) GetBusIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := h.provider.BusIncidents(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"status": "upstream_failure",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"count":     len(incidents),
		"incidents": incidents,
	})
}
