package httpapi

import (
	"net/http"
)

// HealthHandler serves liveness and readiness. Ready may be nil.
type HealthHandler struct {
	Ready func() bool
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
	})
}

func (h HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.Ready != nil && !h.Ready() {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not ready",
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}
