package handlers

import (
	"net/http"

	"event-media/internal/startup"
)

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": startup.Version,
	})
}

// GetVersion returns full build information.
func (h *Handlers) GetVersion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, startup.GetBuildInfo())
}
