package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/providers"
	"github.com/ecogai/pollution-backend/internal/domain/repositories"
	"github.com/ecogai/pollution-backend/internal/infrastructure/observability"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// ReportService handles pollution report intake and retrieval.
type ReportService struct {
	reports repositories.ReportRepository
	media   providers.MediaStore
	bus     providers.EventBus
	metrics *observability.Metrics
}

// NewReportService creates a new report service.
func NewReportService(
	reports repositories.ReportRepository,
	media providers.MediaStore,
	bus providers.EventBus,
	metrics *observability.Metrics,
) *ReportService {
	return &ReportService{reports: reports, media: media, bus: bus, metrics: metrics}
}

// CreateReportInput carries the report submission fields.
type CreateReportInput struct {
	UserID      string                 `json:"userId"`
	Location    *entities.Location     `json:"location"`
	Type        entities.PollutionType `json:"pollutionType"`
	Severity    entities.Severity      `json:"severity"`
	Description string                 `json:"description"`
	ImageBase64 string                 `json:"imageBase64"`
	Source      string                 `json:"source"`
}

// CreateReport validates, stores and announces a new report. Image
// upload failures are logged and skipped; the report still lands.
func (s *ReportService) CreateReport(ctx context.Context, input CreateReportInput) (*entities.PollutionReport, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}
	if input.Location == nil {
		return nil, apperrors.NewValidationError("location is required")
	}
	if input.Location.Latitude == 0 && input.Location.Longitude == 0 {
		return nil, apperrors.NewValidationError("location coordinates are required")
	}
	if !entities.ValidPollutionType(input.Type) {
		return nil, apperrors.NewValidationError("pollutionType must be one of air, water, noise, waste, gas_emission")
	}
	if !entities.ValidSeverity(input.Severity) {
		return nil, apperrors.NewValidationError("severity must be one of low, medium, high, critical")
	}

	now := time.Now().UTC()
	report := &entities.PollutionReport{
		ID:          uuid.New().String(),
		UserID:      input.UserID,
		Location:    *input.Location,
		Type:        input.Type,
		Severity:    input.Severity,
		Description: input.Description,
		Status:      entities.StatusPending,
		Source:      input.Source,
		TimestampMS: now.UnixMilli(),
		CreatedAt:   now,
	}
	if report.Source == "" {
		report.Source = "mobile_app"
	}

	if input.ImageBase64 != "" {
		report.ImageURL = s.uploadImage(ctx, report.ID, input.ImageBase64)
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	s.publishCreated(ctx, report)
	observability.RecordReportCreated(ctx, s.metrics, string(report.Type), string(report.Severity))

	return report, nil
}

// GetReport returns a single report.
func (s *ReportService) GetReport(ctx context.Context, reportID string) (*entities.PollutionReport, error) {
	if strings.TrimSpace(reportID) == "" {
		return nil, apperrors.NewValidationError("report id is required")
	}
	return s.reports.GetByID(ctx, reportID)
}

// ListReports returns reports matching the filter, newest first.
func (s *ReportService) ListReports(ctx context.Context, filter repositories.ReportFilter) ([]*entities.PollutionReport, error) {
	return s.reports.List(ctx, filter)
}

// ListUserReports returns every report submitted by a user.
func (s *ReportService) ListUserReports(ctx context.Context, userID string) ([]*entities.PollutionReport, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}
	return s.reports.List(ctx, repositories.ReportFilter{UserID: userID})
}

func (s *ReportService) uploadImage(ctx context.Context, reportID, imageBase64 string) string {
	logger := observability.LoggerFromContext(ctx)

	// Accept both raw base64 and data URLs from older client builds.
	payload := imageBase64
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		logger.Warn().Str("reportId", reportID).Err(err).Msg("invalid report image payload, storing report without image")
		return ""
	}

	key := fmt.Sprintf("pollution-images/%s.jpg", reportID)
	url, err := s.media.PutObject(ctx, key, data, "image/jpeg", map[string]string{"reportId": reportID})
	if err != nil {
		logger.Warn().Str("reportId", reportID).Err(err).Msg("report image upload failed, storing report without image")
		return ""
	}
	return url
}

func (s *ReportService) publishCreated(ctx context.Context, report *entities.PollutionReport) {
	if s.bus == nil {
		return
	}

	event := &entities.ReportEvent{
		ID:        uuid.New().String(),
		Type:      entities.ReportEventCreated,
		ReportID:  report.ID,
		UserID:    report.UserID,
		Location:  report.Location,
		Pollution: report.Type,
		Severity:  report.Severity,
		ImageURL:  report.ImageURL,
		Timestamp: report.CreatedAt,
	}
	if err := s.bus.Publish(ctx, providers.EventChannelReports, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Str("reportId", report.ID).
			Err(err).
			Msg("failed to publish report event")
	}
}
