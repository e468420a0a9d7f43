package services

import (
	"strings"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
)

// TranscriptAnalysis is the result of keyword analysis over a voice
// transcription.
type TranscriptAnalysis struct {
	Type     entities.PollutionType
	Severity entities.Severity
	Keywords []string
}

var pollutionKeywords = []struct {
	words []string
	t     entities.PollutionType
}{
	{[]string{"smoke", "gas", "fumes", "emission", "fire", "burning"}, entities.PollutionGasEmission},
	{[]string{"trash", "garbage", "waste", "dump"}, entities.PollutionWaste},
	{[]string{"water", "river", "sewage"}, entities.PollutionWater},
	{[]string{"noise", "loud", "blasting"}, entities.PollutionNoise},
}

// AnalyzeTranscript classifies a spoken pollution report by keyword
// matching. Deterministic; unmatched text defaults to an air report at
// low severity.
func AnalyzeTranscript(text string) TranscriptAnalysis {
	lower := strings.ToLower(text)

	analysis := TranscriptAnalysis{
		Type:     entities.PollutionAir,
		Severity: entities.SeverityLow,
	}

	for _, group := range pollutionKeywords {
		if containsAny(lower, group.words) {
			analysis.Type = group.t
			break
		}
	}

	if containsAny(lower, []string{"severe", "critical", "heavy", "dangerous"}) {
		analysis.Severity = entities.SeverityHigh
	} else if containsAny(lower, []string{"moderate", "some", "noticeable"}) {
		analysis.Severity = entities.SeverityMedium
	}

	words := strings.Fields(lower)
	if len(words) > 5 {
		words = words[:5]
	}
	analysis.Keywords = words

	return analysis
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
