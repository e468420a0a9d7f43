package handlers

import (
	"net/http"

	"github.com/ecogai/pollution-backend/internal/application/services"
	"github.com/ecogai/pollution-backend/internal/domain/entities"
)

// ProfileHandler handles profile endpoints.
type ProfileHandler struct {
	profiles *services.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile handles GET /profile/{userId}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.profiles.GetProfile(r.Context(), r.PathValue("userId"))
	if err != nil {
		respondAppError(w, err, "failed to fetch profile")
		return
	}
	respondSuccess(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /profile/{userId}
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update entities.ProfileUpdate
	if err := decodeBody(r, &update); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}

	user, err := h.profiles.UpdateProfile(r.Context(), r.PathValue("userId"), update)
	if err != nil {
		respondAppError(w, err, "failed to update profile")
		return
	}
	respondSuccess(w, http.StatusOK, user)
}
