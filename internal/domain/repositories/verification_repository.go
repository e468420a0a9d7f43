package repositories

import (
	"context"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
)

// VerificationRepository stores one-time passcodes keyed by email.
// Expiry is enforced by the store (DynamoDB TTL) and re-checked by the
// auth service, since TTL deletion is lazy.
type VerificationRepository interface {
	Put(ctx context.Context, verification *entities.Verification) error
	Get(ctx context.Context, email string) (*entities.Verification, error)
	Delete(ctx context.Context, email string) error
}
