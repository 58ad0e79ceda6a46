package handler

import (
	"errors"
	"net/http"
	"time"

	"b1-flyer/internal/media"
	"b1-flyer/internal/model"

	"github.com/rs/zerolog"
)

// UploadResponse carries the public URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadHandler accepts product image uploads.
type UploadHandler struct {
	store    media.Store
	maxBytes int64
	now      func() time.Time
	logger   zerolog.Logger
}

// NewUploadHandler creates a handler storing images of at most maxBytes in store.
func NewUploadHandler(store media.Store, maxBytes int64, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		store:    store,
		maxBytes: maxBytes,
		now:      time.Now,
		logger:   logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/uploads with a multipart "image" field. Only JPEG,
// PNG, GIF and WebP content is accepted.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.logger)
	if !ok {
		return
	}

	// Leave room for the multipart envelope around the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+64<<10)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, model.NewValidationError("image exceeds the upload size limit"), h.logger)
			return
		}
		writeError(w, r, model.NewValidationError("invalid multipart form"), h.logger)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, r, model.NewValidationError("image file is required"), h.logger)
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		writeError(w, r, model.NewValidationError("image exceeds the upload size limit"), h.logger)
		return
	}

	// Stored type and extension follow the sniffed content, not the client headers
	contentType, body, err := media.DetectImage(file)
	if err != nil {
		if errors.Is(err, media.ErrNotImage) {
			writeError(w, r, model.NewValidationError("only image files are allowed"), h.logger)
			return
		}
		writeError(w, r, err, h.logger)
		return
	}

	name := media.ObjectName(contentType, h.now())
	url, err := h.store.Put(r.Context(), name, contentType, body)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	h.logger.Info().
		Str("user_id", identity.UserID).
		Str("object", name).
		Int64("bytes", header.Size).
		Msg("image uploaded")

	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}
