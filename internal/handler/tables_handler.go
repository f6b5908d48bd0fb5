package handlers

import (
	"net/http"
)

type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	CountTables int    `json:"countTables"`
}

// Health reports whether the database answers and how many tables it holds.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.TablesService.CountTables(r.Context())
	if err != nil {
		h.Logger.Error("health check failed", "error", err)
		writeSuccess(w, HealthResponse{Status: "degraded", Database: "down"}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Database: "up", CountTables: count}, http.StatusOK)
}
