package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/providers"
	"github.com/ecogai/pollution-backend/internal/infrastructure/observability"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

const (
	tokenTTL    = 24 * time.Hour
	defaultRole = "publisher"
)

// VoiceService backs the Agora voice session endpoints: token issuance,
// voice-transcribed reports and location tips.
type VoiceService struct {
	appID       string
	certificate string
	reports     *ReportService
	advice      *AdviceService
	geo         providers.GeolocationProvider
	speech      providers.SpeechProvider
}

// NewVoiceService creates a new voice service.
func NewVoiceService(
	appID, certificate string,
	reports *ReportService,
	advice *AdviceService,
	geo providers.GeolocationProvider,
	speech providers.SpeechProvider,
) *VoiceService {
	return &VoiceService{
		appID:       appID,
		certificate: certificate,
		reports:     reports,
		advice:      advice,
		geo:         geo,
		speech:      speech,
	}
}

// AgoraToken is the credential set for joining a voice channel.
type AgoraToken struct {
	Token       string `json:"token"`
	AppID       string `json:"appId"`
	ChannelName string `json:"channelName"`
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	ExpiresAt   int64  `json:"expiresAt"`
}

// GenerateToken derives a channel token for the user. The token is a
// SHA-256 digest over the channel parameters; deterministic for a given
// expiry, so the client and any audio bot can rejoin with the same
// credential.
func (s *VoiceService) GenerateToken(ctx context.Context, userID, channelName, role string) (*AgoraToken, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}

	if channelName == "" {
		channelName = fmt.Sprintf("health-%s-%d", userID, time.Now().Unix())
	}
	if role == "" {
		role = defaultRole
	}

	expiresAt := time.Now().Add(tokenTTL).Unix()
	seed := fmt.Sprintf("%s:%s:%s:%s:%s:%d", s.appID, s.certificate, channelName, userID, role, expiresAt)
	sum := sha256.Sum256([]byte(seed))

	return &AgoraToken{
		Token:       hex.EncodeToString(sum[:]),
		AppID:       s.appID,
		ChannelName: channelName,
		UserID:      userID,
		Role:        role,
		ExpiresAt:   expiresAt,
	}, nil
}

// VoiceReportInput is a report submitted through the voice assistant.
type VoiceReportInput struct {
	UserID             string             `json:"userId"`
	Location           *entities.Location `json:"location"`
	VoiceTranscription string             `json:"voiceTranscription"`
	ImageBase64        string             `json:"imageBase64"`
}

// VoiceReportResult bundles the stored report with the spoken response.
type VoiceReportResult struct {
	Report   *entities.PollutionReport `json:"report"`
	Tips     string                    `json:"tips"`
	Severity entities.Severity         `json:"severity"`
	AudioURL string                    `json:"audioUrl,omitempty"`
}

// CreateVoiceReport turns a transcription into a pollution report and
// answers with spoken tips.
func (s *VoiceService) CreateVoiceReport(ctx context.Context, input VoiceReportInput) (*VoiceReportResult, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}
	if input.Location == nil {
		return nil, apperrors.NewValidationError("location is required")
	}

	location := *input.Location
	if location.Address == "" {
		if addr, err := s.geo.ReverseGeocode(ctx, location.Latitude, location.Longitude); err == nil {
			location.Address = addr.FormattedAddress
			if location.Barangay == "" {
				location.Barangay = addr.Barangay
			}
			if location.City == "" {
				location.City = addr.City
			}
		}
	}

	analysis := AnalyzeTranscript(input.VoiceTranscription)
	report, err := s.reports.CreateReport(ctx, CreateReportInput{
		UserID:      input.UserID,
		Location:    &location,
		Type:        analysis.Type,
		Severity:    analysis.Severity,
		Description: input.VoiceTranscription,
		ImageBase64: input.ImageBase64,
		Source:      "agora_voice",
	})
	if err != nil {
		return nil, err
	}

	advice, err := s.advice.GetAdvice(ctx, AdviceInput{
		UserID:        input.UserID,
		Location:      &location,
		TriggerReason: "user_request",
	})
	if err != nil {
		return nil, err
	}

	return &VoiceReportResult{
		Report:   report,
		Tips:     advice.SpokenText,
		Severity: advice.Severity,
		AudioURL: s.synthesize(ctx, input.UserID, advice.SpokenText),
	}, nil
}

// LocationTipsResult is the spoken pollution summary for a position.
type LocationTipsResult struct {
	Tips        string                  `json:"tips"`
	Severity    entities.Severity       `json:"severity"`
	NearbyCount int                     `json:"nearbyCount"`
	Nearby      []entities.NearbyReport `json:"nearby"`
	AudioURL    string                  `json:"audioUrl,omitempty"`
}

// LocationTips summarises pollution around a position as spoken tips.
func (s *VoiceService) LocationTips(ctx context.Context, userID string, location entities.Location) (*LocationTipsResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}

	advice, err := s.advice.GetAdvice(ctx, AdviceInput{
		UserID:        userID,
		Location:      &location,
		TriggerReason: "user_request",
	})
	if err != nil {
		return nil, err
	}

	nearby := s.advice.NearbyReports(ctx, location)
	return &LocationTipsResult{
		Tips:        advice.SpokenText,
		Severity:    advice.Severity,
		NearbyCount: len(nearby),
		Nearby:      nearby,
		AudioURL:    s.synthesize(ctx, userID, advice.SpokenText),
	}, nil
}

func (s *VoiceService) synthesize(ctx context.Context, userID, text string) string {
	if s.speech == nil || text == "" {
		return ""
	}
	audioURL, err := s.speech.Synthesize(ctx, userID, uuid.New().String(), providers.SpeechRequest{Text: text})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Str("userId", userID).
			Err(err).
			Msg("tips audio synthesis failed")
		return ""
	}
	return audioURL
}
