package repositories

import (
	"context"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
)

// UserRepository defines the interface for user profile persistence.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, userID string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, userID string, update entities.ProfileUpdate) (*entities.User, error)
}
