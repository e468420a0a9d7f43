package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
)

// FallbackAdvice produces the deterministic advisory used whenever the
// model is unreachable. It is a pure function of its inputs so the
// degraded path stays testable.
func FallbackAdvice(name string, nearby []entities.NearbyReport) entities.HealthAdvice {
	first := "User"
	if fields := strings.Fields(name); len(fields) > 0 {
		first = fields[0]
	}

	text := fmt.Sprintf("Hello %s. Air quality appears normal in your area. Continue to monitor for any changes.", first)
	if len(nearby) > 0 {
		text = fmt.Sprintf("Hello %s. There are pollution reports in your area. Please stay indoors, close your windows, and monitor air quality. Stay safe.", first)
	}

	return entities.HealthAdvice{
		SpokenText:  text,
		Severity:    entities.SeverityMedium,
		GeneratedBy: "fallback",
		GeneratedAt: time.Now().UTC(),
	}
}

// DetermineSeverity folds nearby reports into a single advisory level.
func DetermineSeverity(nearby []entities.NearbyReport) entities.Severity {
	if len(nearby) == 0 {
		return entities.SeverityLow
	}

	var critical, high int
	for _, r := range nearby {
		switch r.Severity {
		case entities.SeverityCritical:
			critical++
		case entities.SeverityHigh:
			high++
		}
	}

	switch {
	case critical > 0:
		return entities.SeverityCritical
	case high > 0:
		return entities.SeverityHigh
	default:
		return entities.SeverityMedium
	}
}
