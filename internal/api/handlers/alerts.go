package handlers

import (
	"net/http"
	"strings"
)

type AlertsHandler struct {
	provider AlertProvider
}

func NewAlertsHandler(provider AlertProvider) *AlertsHandler {
	return &AlertsHandler{provider: provider}
}

// GetAlerts returns active service alerts, optionally filtered by a
// comma-separated routes query parameter.
func (h *AlertsHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	var routes []string
	if raw := r.URL.Query().Get("routes"); raw != "" {
		for _, route := range strings.Split(raw, ",") {
			if route = strings.TrimSpace(route); route != "" {
				routes = append(routes, route)
			}
		}
	}

	alerts, err := h.provider.Alerts(r.Context(), routes)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"status": "upstream_failure",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"count":  len(alerts),
		"alerts": alerts,
	})
}
