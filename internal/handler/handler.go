package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"b1-flyer/internal/middleware"
	"b1-flyer/internal/model"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

var (
	errInvalidJSON = model.NewDomainError(model.ErrCodeInvalidJSON, "Invalid JSON payload")
	errServer      = model.NewDomainError(model.ErrCodeInternalError, "Server error")
)

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps err to a status code and writes the error body. Errors that
// are not domain errors are logged and reported as a generic server error.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	status, de := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("handler error")
	} else {
		logger.Debug().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request rejected")
	}

	writeJSON(w, status, model.ErrorResponse{
		Message:       de.Message,
		Code:          de.Code,
		CorrelationID: chimw.GetReqID(r.Context()),
	})
}

// classify returns the HTTP status for err together with the error to expose.
func classify(err error) (int, *model.DomainError) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, errServer
	}
	if model.IsValidationError(de) {
		return http.StatusBadRequest, de
	}

	switch de.Code {
	case model.ErrCodeInvalidJSON, model.ErrCodeDuplicateBarcode, model.ErrCodeEmailTaken:
		return http.StatusBadRequest, de
	case model.ErrCodeUnauthenticated, model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized, de
	case model.ErrCodeInvalidToken:
		return http.StatusForbidden, de
	case model.ErrCodeProductNotFound, model.ErrCodeFlyerNotFound, model.ErrCodeUserNotFound, model.ErrCodeRouteNotFound:
		return http.StatusNotFound, de
	default:
		return http.StatusInternalServerError, errServer
	}
}

// decodeJSON reads a single JSON document from the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return errInvalidJSON
	}
	return nil
}

// requireIdentity returns the authenticated caller, writing a 401 when the
// route was reached without one.
func requireIdentity(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (*model.Identity, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, r, model.ErrUnauthenticated, logger)
		return nil, false
	}
	return identity, true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewValidationError("invalid " + key + " parameter")
	}
	return v, nil
}
