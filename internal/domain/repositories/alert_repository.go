package repositories

import (
	"context"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
)

// AlertRepository defines the interface for stored health alerts.
type AlertRepository interface {
	Create(ctx context.Context, alert *entities.HealthAlert) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.HealthAlert, error)
}
