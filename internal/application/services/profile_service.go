package services

import (
	"context"
	"strings"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/repositories"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// ProfileService handles user profile reads and updates.
type ProfileService struct {
	users repositories.UserRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(users repositories.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// GetProfile returns the profile for userID.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*entities.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update. Only the fields present in
// the update are written; anything else in the request is ignored.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update entities.ProfileUpdate) (*entities.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}
	return s.users.Update(ctx, userID, update)
}
