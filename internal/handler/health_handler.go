package handler

import (
	"net/http"

	"budgie-shop/internal/service"

	"github.com/rs/zerolog"
)

// HealthHandler serves the greeting, liveness and diagnostic routes.
type HealthHandler struct {
	diagnostics service.DiagnosticsService
	logger      zerolog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(diagnostics service.DiagnosticsService, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		diagnostics: diagnostics,
		logger:      logger.With().Str("handler", "health").Logger(),
	}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Hello from the budgie-shop backend!"})
}

// Hello handles GET /api/hello.
func (h *HealthHandler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Hello from the backend API!"})
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Test handles GET /test and always answers 200.
func (h *HealthHandler) Test(w http.ResponseWriter, r *http.Request) {
	report := h.diagnostics.Report(r.Context())

	h.logger.Debug().
		Str("database", report.Database).
		Int("collections", len(report.Collections)).
		Msg("diagnostics reported")

	writeJSON(w, http.StatusOK, report)
}
