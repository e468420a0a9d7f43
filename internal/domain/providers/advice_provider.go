package providers

import (
	"context"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
)

// AdviceRequest carries everything the model needs to produce a
// personalised, voice-ready advisory.
type AdviceRequest struct {
	UserName         string
	HealthConditions []string
	Barangay         string
	Query            string
	Nearby           []entities.NearbyReport
	TriggerReason    string // "user_request" | "high_pollution" | "emergency"
}

// AdviceProvider generates health advice text. The production adapter
// invokes Bedrock; callers are expected to fall back to the canned
// responder when it errors.
type AdviceProvider interface {
	GenerateAdvice(ctx context.Context, req AdviceRequest) (string, error)
}
