package handler

import (
	"net/http"

	"b1-flyer/internal/model"
	"b1-flyer/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// FlyerHandler handles flyer-related HTTP requests.
type FlyerHandler struct {
	service service.FlyerService
	logger  zerolog.Logger
}

// NewFlyerHandler creates a new flyer handler.
func NewFlyerHandler(service service.FlyerService, logger zerolog.Logger) *FlyerHandler {
	return &FlyerHandler{
		service: service,
		logger:  logger.With().Str("handler", "flyer").Logger(),
	}
}

// GetAll handles GET /api/flyers, optionally filtered by ?status.
func (h *FlyerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.logger)
	if !ok {
		return
	}

	filter := model.FlyerFilter{Status: r.URL.Query().Get("status")}
	var err error
	if filter.Limit, err = queryInt(r, "limit", 0); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	flyers, err := h.service.GetAll(r.Context(), identity.UserID, filter)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, flyers)
}

// GetByID handles GET /api/flyers/{id}.
func (h *FlyerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.logger)
	if !ok {
		return
	}

	flyer, err := h.service.GetByID(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, flyer)
}

// Create handles POST /api/flyers.
func (h *FlyerHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateFlyerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	flyer, err := h.service.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, flyer)
}

// Update handles PUT /api/flyers/{id}.
func (h *FlyerHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.UpdateFlyerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	flyer, err := h.service.Update(r.Context(), identity.UserID, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, flyer)
}

// Delete handles DELETE /api/flyers/{id}.
func (h *FlyerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Flyer deleted successfully"})
}

// Duplicate handles POST /api/flyers/{id}/duplicate.
func (h *FlyerHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.logger)
	if !ok {
		return
	}

	flyer, err := h.service.Duplicate(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, flyer)
}
