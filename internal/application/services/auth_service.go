package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/providers"
	"github.com/ecogai/pollution-backend/internal/domain/repositories"
	"github.com/ecogai/pollution-backend/internal/infrastructure/observability"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

const (
	otpLength      = 4
	otpTTL         = 5 * time.Minute
	minPasswordLen = 8
)

// AuthService handles signup, login and OTP verification.
type AuthService struct {
	identity      providers.IdentityProvider
	users         repositories.UserRepository
	verifications repositories.VerificationRepository
	otp           providers.OTPSender
}

// NewAuthService creates a new auth service.
func NewAuthService(
	identity providers.IdentityProvider,
	users repositories.UserRepository,
	verifications repositories.VerificationRepository,
	otp providers.OTPSender,
) *AuthService {
	return &AuthService{
		identity:      identity,
		users:         users,
		verifications: verifications,
		otp:           otp,
	}
}

// SignUpInput carries the signup request fields.
type SignUpInput struct {
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	Name             string   `json:"name"`
	Phone            string   `json:"phone"`
	HealthConditions []string `json:"healthConditions"`
	Barangay         string   `json:"barangay"`
	City             string   `json:"city"`
}

// LoginResult is the token set plus the profile identifier.
type LoginResult struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int32  `json:"expiresIn"`
}

// SignUp registers a new account and its profile row.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*entities.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("A valid email is required")
	}
	if len(input.Password) < minPasswordLen {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("Name is required")
	}

	if err := s.identity.CreateUser(ctx, email, input.Password, input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:               uuid.New().String(),
		Email:            email,
		Name:             strings.TrimSpace(input.Name),
		Phone:            strings.TrimSpace(input.Phone),
		HealthConditions: input.HealthConditions,
		Barangay:         input.Barangay,
		City:             input.City,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if user.HealthConditions == nil {
		user.HealthConditions = []string{}
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login exchanges credentials for tokens and resolves the profile ID.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("Email and password are required")
	}

	creds, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{
		AccessToken:  creds.AccessToken,
		IDToken:      creds.IDToken,
		RefreshToken: creds.RefreshToken,
		ExpiresIn:    creds.ExpiresIn,
	}

	// A missing profile row should not block sign-in; the client can
	// re-create it from the profile screen.
	if user, err := s.users.GetByEmail(ctx, email); err == nil {
		result.UserID = user.ID
	} else {
		observability.LoggerFromContext(ctx).Warn().
			Str("email", email).
			Err(err).
			Msg("signed in without profile row")
	}
	return result, nil
}

// Logout revokes the sessions behind the access token.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return apperrors.NewUnauthorizedError("Access token is required")
	}
	return s.identity.SignOut(ctx, accessToken)
}

// SendOTP issues a fresh verification code. Delivery is best effort;
// the stored code is authoritative.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return apperrors.NewValidationError("A valid email is required")
	}

	code, err := generateOTP()
	if err != nil {
		return apperrors.NewInternalError("failed to generate verification code", err)
	}

	verification := &entities.Verification{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL).Unix(),
	}
	if err := s.verifications.Put(ctx, verification); err != nil {
		return err
	}

	if err := s.otp.SendCode(ctx, email, code); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Str("email", email).
			Err(err).
			Msg("otp delivery failed")
	}
	return nil
}

// VerifyOTP checks a submitted code against the stored one.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return apperrors.NewValidationError("Email is required")
	}
	if !validOTPFormat(code) {
		return apperrors.NewValidationError(fmt.Sprintf("Verification code must be %d digits", otpLength))
	}

	stored, err := s.verifications.Get(ctx, email)
	if err != nil {
		return err
	}
	if time.Now().Unix() > stored.ExpiresAt {
		_ = s.verifications.Delete(ctx, email)
		return apperrors.NewUnauthorizedError("Verification code expired")
	}
	if stored.Code != code {
		return apperrors.NewUnauthorizedError("Invalid verification code")
	}

	return s.verifications.Delete(ctx, email)
}

func generateOTP() (string, error) {
	max := big.NewInt(10000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

func validOTPFormat(code string) bool {
	if len(code) != otpLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
