package repositories

import (
	"context"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
)

// ReportFilter narrows a report listing. Zero values mean "no filter".
type ReportFilter struct {
	UserID   string
	Type     entities.PollutionType
	Severity entities.Severity
	Barangay string
	City     string
	Limit    int
}

// ReportRepository defines the interface for pollution report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *entities.PollutionReport) error
	GetByID(ctx context.Context, reportID string) (*entities.PollutionReport, error)
	List(ctx context.Context, filter ReportFilter) ([]*entities.PollutionReport, error)
	UpdateStatus(ctx context.Context, reportID string, status entities.ReportStatus) error
}
