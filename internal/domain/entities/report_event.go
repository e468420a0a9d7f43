package entities

import "time"

// ReportEventType identifies what happened to a report.
type ReportEventType string

// Report event types published on the event bus.
const (
	ReportEventCreated  ReportEventType = "report.created"
	ReportEventVerified ReportEventType = "report.verified"
)

// ReportEvent is the message published when a report changes. The alert
// pipeline consumes these instead of polling the reports table.
type ReportEvent struct {
	ID        string          `json:"id"`
	Type      ReportEventType `json:"type"`
	ReportID  string          `json:"reportId"`
	UserID    string          `json:"userId"`
	Location  Location        `json:"location"`
	Pollution PollutionType   `json:"pollutionType"`
	Severity  Severity        `json:"severity"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
