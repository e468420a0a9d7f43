package handlers

import (
	"net/http"
	"strconv"

	"github.com/ecogai/pollution-backend/internal/application/services"
	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/repositories"
)

// ReportHandler handles pollution report endpoints.
type ReportHandler struct {
	reports *services.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// CreateReport handles POST /reports
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var input services.CreateReportInput
	if err := decodeBody(r, &input); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}

	report, err := h.reports.CreateReport(r.Context(), input)
	if err != nil {
		respondAppError(w, err, "failed to create report")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{
		"reportId":  report.ID,
		"timestamp": report.TimestampMS,
		"imageUrl":  report.ImageURL,
		"status":    report.Status,
	})
}

// ListReports handles GET /reports
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.ReportFilter{
		Type:     entities.PollutionType(query.Get("pollutionType")),
		Severity: entities.Severity(query.Get("severity")),
		Barangay: query.Get("barangay"),
		City:     query.Get("city"),
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	reports, err := h.reports.ListReports(r.Context(), filter)
	if err != nil {
		respondAppError(w, err, "failed to list reports")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"reports": reports,
		"count":   len(reports),
	})
}

// GetReport handles GET /reports/{id}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		respondAppError(w, err, "failed to fetch report")
		return
	}
	respondSuccess(w, http.StatusOK, report)
}

// ListUserReports handles GET /reports/user/{userId}
func (h *ReportHandler) ListUserReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reports.ListUserReports(r.Context(), r.PathValue("userId"))
	if err != nil {
		respondAppError(w, err, "failed to list reports")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"reports": reports,
		"count":   len(reports),
	})
}
