package services

import (
	"context"
	"strings"
	"time"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/providers"
	"github.com/ecogai/pollution-backend/internal/domain/repositories"
	"github.com/ecogai/pollution-backend/internal/infrastructure/observability"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// nearbyRadiusKm bounds what counts as pollution "near" a user.
const nearbyRadiusKm = 5.0

// AdviceService produces personalised health advisories. Model failures
// never surface to callers; the deterministic fallback kicks in.
type AdviceService struct {
	users   repositories.UserRepository
	reports repositories.ReportRepository
	geo     providers.GeolocationProvider
	advisor providers.AdviceProvider
	metrics *observability.Metrics
}

// NewAdviceService creates a new advice service.
func NewAdviceService(
	users repositories.UserRepository,
	reports repositories.ReportRepository,
	geo providers.GeolocationProvider,
	advisor providers.AdviceProvider,
	metrics *observability.Metrics,
) *AdviceService {
	return &AdviceService{
		users:   users,
		reports: reports,
		geo:     geo,
		advisor: advisor,
		metrics: metrics,
	}
}

// AdviceInput describes an advisory request. Message is empty for
// pipeline-triggered advisories and set for user chat questions.
type AdviceInput struct {
	UserID        string
	Message       string
	Location      *entities.Location
	TriggerReason string
}

// GetAdvice builds the advisory for the given user and situation.
func (s *AdviceService) GetAdvice(ctx context.Context, input AdviceInput) (*entities.HealthAdvice, error) {
	if strings.TrimSpace(input.Message) == "" && input.Location == nil {
		return nil, apperrors.NewValidationError("message or location is required")
	}

	trigger := input.TriggerReason
	if trigger == "" {
		trigger = "user_request"
	}

	name := "User"
	var conditions []string
	var barangay string
	if input.UserID != "" {
		if user, err := s.users.GetByID(ctx, input.UserID); err == nil {
			name = user.Name
			conditions = user.HealthConditions
			barangay = user.Barangay
		}
	}

	var nearby []entities.NearbyReport
	if input.Location != nil {
		nearby = s.NearbyReports(ctx, *input.Location)
		if input.Location.Barangay != "" {
			barangay = input.Location.Barangay
		}
	}

	text, err := s.advisor.GenerateAdvice(ctx, providers.AdviceRequest{
		UserName:         name,
		HealthConditions: conditions,
		Barangay:         barangay,
		Query:            input.Message,
		Nearby:           nearby,
		TriggerReason:    trigger,
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Str("userId", input.UserID).
			Err(err).
			Msg("model advice failed, serving fallback")
		advice := FallbackAdvice(name, nearby)
		observability.RecordAdviceGenerated(ctx, s.metrics, advice.GeneratedBy)
		return &advice, nil
	}

	severity := DetermineSeverity(nearby)
	if trigger == "emergency" {
		severity = entities.SeverityCritical
	}

	advice := &entities.HealthAdvice{
		SpokenText:  text,
		Severity:    severity,
		GeneratedBy: "bedrock",
		GeneratedAt: time.Now().UTC(),
	}
	observability.RecordAdviceGenerated(ctx, s.metrics, advice.GeneratedBy)
	return advice, nil
}

// NearbyReports collects reports within nearbyRadiusKm of the location,
// trimmed to the fields the advisor prompt needs.
func (s *AdviceService) NearbyReports(ctx context.Context, loc entities.Location) []entities.NearbyReport {
	all, err := s.reports.List(ctx, repositories.ReportFilter{})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to list reports for proximity check")
		return nil
	}

	origin := providers.Coordinates{Latitude: loc.Latitude, Longitude: loc.Longitude}
	var nearby []entities.NearbyReport
	for _, report := range all {
		distance, err := s.geo.CalculateDistance(ctx, origin, providers.Coordinates{
			Latitude:  report.Location.Latitude,
			Longitude: report.Location.Longitude,
		})
		if err != nil || distance > nearbyRadiusKm {
			continue
		}
		nearby = append(nearby, entities.NearbyReport{
			Type:       report.Type,
			Severity:   report.Severity,
			DistanceKm: distance,
		})
	}
	return nearby
}
