package handlers

import "net/http"

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "metrovoice",
		"description": "Live DC Metro timetables for spoken station and stop queries",
		"endpoints": map[string]string{
			"GET /api":                 "API information",
			"GET /health":              "Health check",
			"GET /api/rail/{station}":  "Arrivals and incidents for a spoken station name",
			"GET /api/bus/{stop}":      "Arrivals for a (possibly noisy) bus stop id",
			"GET /api/incidents/rail":  "All active rail incidents",
			"GET /api/incidents/bus":   "All active bus incidents",
			"GET /api/alerts":          "Active service alerts, filterable with ?routes=RD,BL",
		},
	})
}
