package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecogai/pollution-backend/internal/application/services"
	"github.com/ecogai/pollution-backend/internal/domain/entities"
)

func TestAnalyzeTranscript(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantType     entities.PollutionType
		wantSeverity entities.Severity
	}{
		{
			name:         "smoke maps to gas emission",
			text:         "There is thick smoke coming from the factory",
			wantType:     entities.PollutionGasEmission,
			wantSeverity: entities.SeverityLow,
		},
		{
			name:         "garbage maps to waste",
			text:         "Someone dumped garbage near the school",
			wantType:     entities.PollutionWaste,
			wantSeverity: entities.SeverityLow,
		},
		{
			name:         "river maps to water",
			text:         "The river smells terrible today",
			wantType:     entities.PollutionWater,
			wantSeverity: entities.SeverityLow,
		},
		{
			name:         "loud maps to noise",
			text:         "Very loud construction all night",
			wantType:     entities.PollutionNoise,
			wantSeverity: entities.SeverityLow,
		},
		{
			name:         "no keywords defaults to air",
			text:         "Something strange in the neighborhood",
			wantType:     entities.PollutionAir,
			wantSeverity: entities.SeverityLow,
		},
		{
			name:         "severe raises severity to high",
			text:         "Severe smoke near the market",
			wantType:     entities.PollutionGasEmission,
			wantSeverity: entities.SeverityHigh,
		},
		{
			name:         "moderate raises severity to medium",
			text:         "Moderate garbage buildup along the road",
			wantType:     entities.PollutionWaste,
			wantSeverity: entities.SeverityMedium,
		},
		{
			name:         "first matching group wins",
			text:         "Burning trash by the river",
			wantType:     entities.PollutionGasEmission,
			wantSeverity: entities.SeverityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := services.AnalyzeTranscript(tt.text)
			assert.Equal(t, tt.wantType, analysis.Type)
			assert.Equal(t, tt.wantSeverity, analysis.Severity)
		})
	}
}

func TestAnalyzeTranscript_KeywordsCapped(t *testing.T) {
	analysis := services.AnalyzeTranscript("one two three four five six seven")
	assert.Equal(t, []string{"one", "two", "three", "four", "five"}, analysis.Keywords)
}

func TestAnalyzeTranscript_Deterministic(t *testing.T) {
	first := services.AnalyzeTranscript("Heavy smoke near the highway")
	second := services.AnalyzeTranscript("Heavy smoke near the highway")
	assert.Equal(t, first, second)
	assert.Equal(t, entities.SeverityHigh, first.Severity)
}
