package entities

import "time"

// PollutionType enumerates the categories a spot report can carry.
type PollutionType string

// Known pollution types. Free-form values are rejected at the API edge.
const (
	PollutionAir         PollutionType = "air"
	PollutionWater       PollutionType = "water"
	PollutionNoise       PollutionType = "noise"
	PollutionWaste       PollutionType = "waste"
	PollutionGasEmission PollutionType = "gas_emission"
)

// Severity enumerates report severity levels.
type Severity string

// Severity levels, lowest to highest.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ReportStatus tracks a report through the processing pipeline.
type ReportStatus string

// Report lifecycle states.
const (
	StatusPending    ReportStatus = "pending"
	StatusProcessing ReportStatus = "processing"
	StatusVerified   ReportStatus = "verified"
	StatusResolved   ReportStatus = "resolved"
)

// Location is the geographic position attached to a report.
type Location struct {
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
	Address   string  `json:"address,omitempty" dynamodbav:"address,omitempty"`
	Barangay  string  `json:"barangay,omitempty" dynamodbav:"barangay,omitempty"`
	City      string  `json:"city,omitempty" dynamodbav:"city,omitempty"`
}

// PollutionReport is a user-submitted pollution observation.
type PollutionReport struct {
	ID           string        `json:"reportId" dynamodbav:"reportId"`
	UserID       string        `json:"userId" dynamodbav:"userId"`
	Location     Location      `json:"location" dynamodbav:"location"`
	Type         PollutionType `json:"pollutionType" dynamodbav:"pollutionType"`
	Severity     Severity      `json:"severity" dynamodbav:"severity"`
	Description  string        `json:"description,omitempty" dynamodbav:"description,omitempty"`
	ImageURL     string        `json:"imageUrl,omitempty" dynamodbav:"imageUrl,omitempty"`
	Status       ReportStatus  `json:"status" dynamodbav:"status"`
	Source       string        `json:"source,omitempty" dynamodbav:"source,omitempty"`
	IsVerified   bool          `json:"isVerified" dynamodbav:"isVerified"`
	TimestampMS  int64         `json:"timestamp" dynamodbav:"timestamp"`
	CreatedAt    time.Time     `json:"createdAt" dynamodbav:"createdAt"`
}

// ValidPollutionType reports whether t is one of the known categories.
func ValidPollutionType(t PollutionType) bool {
	switch t {
	case PollutionAir, PollutionWater, PollutionNoise, PollutionWaste, PollutionGasEmission:
		return true
	}
	return false
}

// ValidSeverity reports whether s is one of the known levels.
func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// NearbyReport is the trimmed view of a report used when summarising
// pollution around a point for the health advisor.
type NearbyReport struct {
	Type       PollutionType `json:"type"`
	Severity   Severity      `json:"severity"`
	DistanceKm float64       `json:"distance_km"`
}
