package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/providers"
	"github.com/ecogai/pollution-backend/internal/domain/repositories"
	"github.com/ecogai/pollution-backend/internal/infrastructure/observability"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

const (
	alertTTL          = 7 * 24 * time.Hour
	alertProcessLimit = 60 * time.Second
)

// AlertService watches the report event channel and turns high-severity
// reports into stored health alerts. It runs in-process; failures are
// logged and never reach the request path.
type AlertService struct {
	bus     providers.EventBus
	advice  *AdviceService
	reports repositories.ReportRepository
	alerts  repositories.AlertRepository
	speech  providers.SpeechProvider
	metrics *observability.Metrics
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewAlertService creates a new alert service. speech may be nil; audio
// synthesis is then skipped.
func NewAlertService(
	bus providers.EventBus,
	advice *AdviceService,
	reports repositories.ReportRepository,
	alerts repositories.AlertRepository,
	speech providers.SpeechProvider,
	metrics *observability.Metrics,
) *AlertService {
	ctx, cancel := context.WithCancel(context.Background())
	return &AlertService{
		bus:     bus,
		advice:  advice,
		reports: reports,
		alerts:  alerts,
		speech:  speech,
		metrics: metrics,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start subscribes to report events and begins processing. Without an
// event bus the pipeline stays off but alert reads keep working.
func (s *AlertService) Start() error {
	if s.bus == nil {
		return apperrors.NewInternalError("event bus not configured", nil)
	}

	events, err := s.bus.Subscribe(s.ctx, providers.EventChannelReports)
	if err != nil {
		return err
	}

	go s.processEvents(events)
	observability.GetLogger().Info().Msg("alert service started")
	return nil
}

// Stop halts event processing.
func (s *AlertService) Stop() {
	s.cancel()
	observability.GetLogger().Info().Msg("alert service stopped")
}

// ListUserAlerts returns a user's stored alerts, newest first.
func (s *AlertService) ListUserAlerts(ctx context.Context, userID string, limit int) ([]*entities.HealthAlert, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}
	return s.alerts.ListByUser(ctx, userID, limit)
}

func (s *AlertService) processEvents(events <-chan *entities.ReportEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-events:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *AlertService) handleEvent(event *entities.ReportEvent) {
	if event.Type != entities.ReportEventCreated {
		return
	}
	if event.Severity != entities.SeverityHigh && event.Severity != entities.SeverityCritical {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), alertProcessLimit)
	defer cancel()

	logger := observability.GetLogger().With().
		Str("reportId", event.ReportID).
		Str("userId", event.UserID).
		Str("severity", string(event.Severity)).
		Logger()

	if err := s.reports.UpdateStatus(ctx, event.ReportID, entities.StatusProcessing); err != nil {
		logger.Error().Err(err).Msg("failed to mark report processing")
		return
	}

	trigger := "high_pollution"
	if event.Severity == entities.SeverityCritical {
		trigger = "emergency"
	}

	advice, err := s.advice.GetAdvice(ctx, AdviceInput{
		UserID:        event.UserID,
		Location:      &event.Location,
		TriggerReason: trigger,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to build alert advisory")
		return
	}

	alert := &entities.HealthAlert{
		ID:        uuid.New().String(),
		UserID:    event.UserID,
		Advice:    *advice,
		Location:  event.Location,
		AlertType: "report_followup",
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().Add(alertTTL).Unix(),
	}
	if event.Severity == entities.SeverityCritical {
		alert.AlertType = "emergency_alert"
	}

	if s.speech != nil {
		audioURL, err := s.speech.Synthesize(ctx, event.UserID, alert.ID, providers.SpeechRequest{
			Text: advice.SpokenText,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("alert audio synthesis failed, storing text-only alert")
		} else {
			alert.AudioURL = audioURL
		}
	}

	if err := s.alerts.Create(ctx, alert); err != nil {
		logger.Error().Err(err).Msg("failed to store health alert")
		return
	}

	if err := s.reports.UpdateStatus(ctx, event.ReportID, entities.StatusVerified); err != nil {
		logger.Error().Err(err).Msg("failed to mark report verified")
	}

	observability.RecordAlertStored(ctx, s.metrics, alert.AlertType)
	logger.Info().Str("alertId", alert.ID).Msg("health alert stored")
}
