package handlers

import (
	"net/http"

	"github.com/s/elearning/internal/database"
)

// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := database.Ping(r.Context(), h.DB); err != nil {
		h.Log.Warn("health check failed", "error", err)
		jsonError(w, "database unavailable", "unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
