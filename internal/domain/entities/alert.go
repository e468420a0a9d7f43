package entities

import "time"

// HealthAdvice is a generated advisory, either from the model or from
// the deterministic fallback.
type HealthAdvice struct {
	SpokenText  string    `json:"spokenText" dynamodbav:"spokenText"`
	Severity    Severity  `json:"severity" dynamodbav:"severity"`
	GeneratedBy string    `json:"generatedBy" dynamodbav:"generatedBy"` // "bedrock" | "fallback"
	GeneratedAt time.Time `json:"generatedAt" dynamodbav:"generatedAt"`
}

// HealthAlert is a stored advisory delivered (or queued) for a user.
type HealthAlert struct {
	ID          string       `json:"alertId" dynamodbav:"alertId"`
	UserID      string       `json:"userId" dynamodbav:"userId"`
	Advice      HealthAdvice `json:"advice" dynamodbav:"advice"`
	Location    Location     `json:"location" dynamodbav:"location"`
	AlertType   string       `json:"alertType" dynamodbav:"alertType"` // "voice_session" | "emergency_alert" | "report_followup"
	ChannelName string       `json:"channelName,omitempty" dynamodbav:"channelName,omitempty"`
	AudioURL    string       `json:"audioUrl,omitempty" dynamodbav:"audioUrl,omitempty"`
	IsHeard     bool         `json:"isHeard" dynamodbav:"isHeard"`
	CreatedAt   time.Time    `json:"createdAt" dynamodbav:"createdAt"`
	ExpiresAt   int64        `json:"expiresAt" dynamodbav:"expiresAt"` // Unix seconds, DynamoDB TTL
}
