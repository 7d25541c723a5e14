package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"punchclock/internal/services"
)

// HealthHandler serves liveness and readiness information
type HealthHandler struct {
	service   *services.AttendanceService
	logger    *slog.Logger
	version   string
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.AttendanceService, logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		service:   service,
		logger:    logger.With(slog.String("component", "health_handler")),
		version:   version,
		startedAt: time.Now(),
	}
}

// Routes returns the health check routes
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Health)
	return r
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "healthy",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).String(),
	}

	if fileName, uploadedAt, ok := h.service.LogInfo(); ok {
		status["log"] = map[string]interface{}{
			"file_name":   fileName,
			"uploaded_at": uploadedAt,
		}
	} else {
		status["log"] = nil
	}

	render.JSON(w, r, status)
}
