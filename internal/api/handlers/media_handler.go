package handlers

import (
	"net/http"

	"github.com/ecogai/pollution-backend/internal/application/services"
)

// MediaHandler handles the standalone image upload endpoint.
type MediaHandler struct {
	media *services.MediaService
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(media *services.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// UploadImage handles POST /upload/image
func (h *MediaHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	var input services.UploadImageInput
	if err := decodeBody(r, &input); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}

	result, err := h.media.UploadImage(r.Context(), input)
	if err != nil {
		respondAppError(w, err, "failed to upload image")
		return
	}

	status := http.StatusCreated
	if result.ImageURL == "" {
		status = http.StatusOK
	}
	respondSuccess(w, status, result)
}
