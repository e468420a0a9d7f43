package handlers

import (
	"net/http"
	"strings"

	"github.com/ecogai/pollution-backend/internal/application/services"
	"github.com/ecogai/pollution-backend/internal/domain/entities"
)

// AdviceHandler handles the health advice / chat endpoint.
type AdviceHandler struct {
	advice *services.AdviceService
}

// NewAdviceHandler creates a new advice handler.
func NewAdviceHandler(advice *services.AdviceService) *AdviceHandler {
	return &AdviceHandler{advice: advice}
}

// GetAdvice handles POST /health-advice and its /ai/chat alias.
func (h *AdviceHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID   string             `json:"userId"`
		Message  string             `json:"message"`
		Location *entities.Location `json:"location"`
	}
	if err := decodeBody(r, &input); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}
	if strings.TrimSpace(input.Message) == "" && input.Location == nil {
		respondError(w, http.StatusBadRequest, "message or location is required")
		return
	}

	advice, err := h.advice.GetAdvice(r.Context(), services.AdviceInput{
		UserID:   input.UserID,
		Message:  input.Message,
		Location: input.Location,
	})
	if err != nil {
		respondAppError(w, err, "failed to generate advice")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"response":    advice.SpokenText,
		"severity":    advice.Severity,
		"generatedBy": advice.GeneratedBy,
	})
}
