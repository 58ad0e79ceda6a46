package handler

import (
	"context"
	"net/http"
	"time"

	"b1-flyer/internal/repository"

	"github.com/rs/zerolog"
)

// HealthResponse reports service liveness and store connectivity.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// HealthHandler answers GET /health.
type HealthHandler struct {
	pinger  repository.Pinger
	timeout time.Duration
	logger  zerolog.Logger
}

// NewHealthHandler creates a health handler probing pinger.
func NewHealthHandler(pinger repository.Pinger, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		pinger:  pinger,
		timeout: 2 * time.Second,
		logger:  logger.With().Str("handler", "health").Logger(),
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{Status: "OK", Timestamp: time.Now().UTC(), Database: "connected"}
	status := http.StatusOK

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("store ping failed")
		resp.Status = "UNAVAILABLE"
		resp.Database = "disconnected"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}
