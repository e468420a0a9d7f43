package handlers

import (
	"net/http"

	"github.com/ecogai/pollution-backend/internal/application/services"
	"github.com/ecogai/pollution-backend/internal/domain/entities"
)

// VoiceHandler handles Agora voice session endpoints.
type VoiceHandler struct {
	voice *services.VoiceService
}

// NewVoiceHandler creates a new voice handler.
func NewVoiceHandler(voice *services.VoiceService) *VoiceHandler {
	return &VoiceHandler{voice: voice}
}

// GenerateToken handles POST /agora/token
func (h *VoiceHandler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID      string `json:"userId"`
		ChannelName string `json:"channelName"`
		Role        string `json:"role"`
	}
	if err := decodeBody(r, &input); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}

	token, err := h.voice.GenerateToken(r.Context(), input.UserID, input.ChannelName, input.Role)
	if err != nil {
		respondAppError(w, err, "failed to generate token")
		return
	}
	respondSuccess(w, http.StatusOK, token)
}

// CreateVoiceReport handles POST /agora/report
func (h *VoiceHandler) CreateVoiceReport(w http.ResponseWriter, r *http.Request) {
	var input services.VoiceReportInput
	if err := decodeBody(r, &input); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}

	result, err := h.voice.CreateVoiceReport(r.Context(), input)
	if err != nil {
		respondAppError(w, err, "failed to create voice report")
		return
	}
	respondSuccess(w, http.StatusCreated, result)
}

// LocationTips handles POST /agora/location-tips
func (h *VoiceHandler) LocationTips(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID   string             `json:"userId"`
		Location *entities.Location `json:"location"`
	}
	if err := decodeBody(r, &input); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}
	if input.Location == nil {
		respondError(w, http.StatusBadRequest, "location is required")
		return
	}

	tips, err := h.voice.LocationTips(r.Context(), input.UserID, *input.Location)
	if err != nil {
		respondAppError(w, err, "failed to generate tips")
		return
	}
	respondSuccess(w, http.StatusOK, tips)
}
