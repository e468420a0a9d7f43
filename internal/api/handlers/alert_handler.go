package handlers

import (
	"net/http"
	"strconv"

	"github.com/ecogai/pollution-backend/internal/application/services"
)

// AlertHandler handles health alert endpoints.
type AlertHandler struct {
	alerts *services.AlertService
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(alerts *services.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// ListUserAlerts handles GET /alerts/{userId}
func (h *AlertHandler) ListUserAlerts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	alerts, err := h.alerts.ListUserAlerts(r.Context(), r.PathValue("userId"), limit)
	if err != nil {
		respondAppError(w, err, "failed to list alerts")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
