package handlers

import (
	"errors"
	"net/http"

	"github.com/jdelgado/metrovoice/internal/timetable"
)

type TimetableHandler struct {
	provider TimetableProvider
}

func NewTimetableHandler(provider TimetableProvider) *TimetableHandler {
	return &TimetableHandler{provider: provider}
}

// GetStationTimetable returns merged arrivals and relevant incidents for a
// spoken station name. A station the matcher cannot resolve is a 404 with
// status "not_found"; an unreachable reference feed is a 502 with status
// "upstream_failure" so callers can tell the two apart.
func (h *TimetableHandler) GetStationTimetable(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("station")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Station name is required",
		})
		return
	}

	result, err := h.provider.StationTimetable(r.Context(), query)
	if errors.Is(err, timetable.ErrStationNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status": "not_found",
			"query":  query,
		})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"status": "upstream_failure",
			"query":  query,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timetable": result,
	})
}

// GetStopTimetable returns arrivals for a bus stop id, tolerating noisy
// voice-to-text input like "stop #3004-076".
func (h *TimetableHandler) GetStopTimetable(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("stop")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Stop id is required",
		})
		return
	}

	result, err := h.provider.StopTimetable(r.Context(), query)
	if errors.Is(err, timetable.ErrStopNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status": "not_found",
			"query":  query,
		})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"status": "upstream_failure",
			"query":  query,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timetable": result,
	})
}
