package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"geocli/pkg/contracts"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	started time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "healthy",
		"uptime":  time.Since(h.started).String(),
		"version": contracts.Version,
	})
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"version": contracts.Version,
	})
}
