package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecogai/pollution-backend/internal/adapters/database"
	"github.com/ecogai/pollution-backend/internal/application/services"
	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/providers"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

type stubIdentity struct {
	mu       sync.Mutex
	created  map[string]string
	signIns  int
	signErr  error
	signOuts []string
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{created: make(map[string]string)}
}

func (s *stubIdentity) CreateUser(ctx context.Context, email, password, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.created[email]; ok {
		return apperrors.NewConflictError("An account with this email already exists")
	}
	s.created[email] = password
	return nil
}

func (s *stubIdentity) SignIn(ctx context.Context, email, password string) (*providers.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signIns++
	if s.signErr != nil {
		return nil, s.signErr
	}
	if stored, ok := s.created[email]; !ok || stored != password {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}
	return &providers.Credentials{
		AccessToken:  "access-" + email,
		IDToken:      "id-" + email,
		RefreshToken: "refresh-" + email,
		ExpiresIn:    3600,
	}, nil
}

func (s *stubIdentity) SignOut(ctx context.Context, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signOuts = append(s.signOuts, accessToken)
	return nil
}

type stubOTPSender struct {
	mu    sync.Mutex
	sent  map[string]string
	err   error
	calls int
}

func newStubOTPSender() *stubOTPSender {
	return &stubOTPSender{sent: make(map[string]string)}
}

func (s *stubOTPSender) SendCode(ctx context.Context, destination, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.sent[destination] = code
	return nil
}

func newAuthService(identity *stubIdentity, otp *stubOTPSender) (*services.AuthService, *database.MemoryUserRepository, *database.MemoryVerificationRepository) {
	users := database.NewMemoryUserRepository()
	verifications := database.NewMemoryVerificationRepository()
	return services.NewAuthService(identity, users, verifications, otp), users, verifications
}

func TestSignUp_CreatesAccountAndProfile(t *testing.T) {
	identity := newStubIdentity()
	service, users, _ := newAuthService(identity, newStubOTPSender())

	user, err := service.SignUp(context.Background(), services.SignUpInput{
		Email:    "Maria@Example.com",
		Password: "password123",
		Name:     "Maria Santos",
		Barangay: "Commonwealth",
		City:     "Quezon City",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "maria@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotNil(t, user.HealthConditions)

	stored, err := users.GetByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)

	_, registered := identity.created["maria@example.com"]
	assert.True(t, registered)
}

func TestSignUp_Validation(t *testing.T) {
	service, _, _ := newAuthService(newStubIdentity(), newStubOTPSender())
	ctx := context.Background()

	tests := []struct {
		name  string
		input services.SignUpInput
	}{
		{"missing email", services.SignUpInput{Password: "password123", Name: "Maria"}},
		{"malformed email", services.SignUpInput{Email: "not-an-email", Password: "password123", Name: "Maria"}},
		{"short password", services.SignUpInput{Email: "m@example.com", Password: "short", Name: "Maria"}},
		{"missing name", services.SignUpInput{Email: "m@example.com", Password: "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SignUp(ctx, tt.input)
			require.Error(t, err)
			assert.Equal(t, 400, apperrors.StatusCode(err))
		})
	}
}

func TestSignUp_DuplicateEmailConflicts(t *testing.T) {
	service, _, _ := newAuthService(newStubIdentity(), newStubOTPSender())
	ctx := context.Background()

	input := services.SignUpInput{Email: "maria@example.com", Password: "password123", Name: "Maria"}
	_, err := service.SignUp(ctx, input)
	require.NoError(t, err)

	_, err = service.SignUp(ctx, input)
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.StatusCode(err))
}

func TestLogin_ReturnsTokensAndProfileID(t *testing.T) {
	service, _, _ := newAuthService(newStubIdentity(), newStubOTPSender())
	ctx := context.Background()

	user, err := service.SignUp(ctx, services.SignUpInput{
		Email:    "maria@example.com",
		Password: "password123",
		Name:     "Maria",
	})
	require.NoError(t, err)

	result, err := service.Login(ctx, "maria@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.UserID)
	assert.Equal(t, "access-maria@example.com", result.AccessToken)
	assert.Equal(t, int32(3600), result.ExpiresIn)
}

func TestLogin_MissingProfileDoesNotBlockSignIn(t *testing.T) {
	identity := newStubIdentity()
	identity.created["maria@example.com"] = "password123"
	service, _, _ := newAuthService(identity, newStubOTPSender())

	result, err := service.Login(context.Background(), "maria@example.com", "password123")
	require.NoError(t, err)
	assert.Empty(t, result.UserID)
	assert.NotEmpty(t, result.AccessToken)
}

func TestLogin_BadCredentials(t *testing.T) {
	service, _, _ := newAuthService(newStubIdentity(), newStubOTPSender())
	_, err := service.Login(context.Background(), "nobody@example.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.StatusCode(err))
}

func TestLogout_RequiresToken(t *testing.T) {
	identity := newStubIdentity()
	service, _, _ := newAuthService(identity, newStubOTPSender())
	ctx := context.Background()

	err := service.Logout(ctx, "")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.StatusCode(err))

	require.NoError(t, service.Logout(ctx, "access-abc"))
	assert.Equal(t, []string{"access-abc"}, identity.signOuts)
}

func TestSendOTP_StoresFourDigitCode(t *testing.T) {
	otp := newStubOTPSender()
	service, _, verifications := newAuthService(newStubIdentity(), otp)
	ctx := context.Background()

	require.NoError(t, service.SendOTP(ctx, "maria@example.com"))

	stored, err := verifications.Get(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Len(t, stored.Code, 4)
	for _, r := range stored.Code {
		assert.True(t, r >= '0' && r <= '9')
	}
	assert.Greater(t, stored.ExpiresAt, time.Now().Unix())
	assert.Equal(t, stored.Code, otp.sent["maria@example.com"])
}

func TestSendOTP_DeliveryFailureIsBestEffort(t *testing.T) {
	otp := newStubOTPSender()
	otp.err = errors.New("sns unavailable")
	service, _, verifications := newAuthService(newStubIdentity(), otp)
	ctx := context.Background()

	require.NoError(t, service.SendOTP(ctx, "maria@example.com"))

	// The stored code is still authoritative even when delivery failed.
	_, err := verifications.Get(ctx, "maria@example.com")
	assert.NoError(t, err)
}

func TestVerifyOTP_HappyPathConsumesCode(t *testing.T) {
	otp := newStubOTPSender()
	service, _, verifications := newAuthService(newStubIdentity(), otp)
	ctx := context.Background()

	require.NoError(t, service.SendOTP(ctx, "maria@example.com"))
	code := otp.sent["maria@example.com"]

	require.NoError(t, service.VerifyOTP(ctx, "maria@example.com", code))

	// The code is single use.
	_, err := verifications.Get(ctx, "maria@example.com")
	require.Error(t, err)
	err = service.VerifyOTP(ctx, "maria@example.com", code)
	require.Error(t, err)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	otp := newStubOTPSender()
	service, _, _ := newAuthService(newStubIdentity(), otp)
	ctx := context.Background()

	require.NoError(t, service.SendOTP(ctx, "maria@example.com"))

	wrong := "0000"
	if otp.sent["maria@example.com"] == wrong {
		wrong = "1111"
	}
	err := service.VerifyOTP(ctx, "maria@example.com", wrong)
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.StatusCode(err))
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	service, _, verifications := newAuthService(newStubIdentity(), newStubOTPSender())
	ctx := context.Background()

	require.NoError(t, verifications.Put(ctx, &entities.Verification{
		Email:     "maria@example.com",
		Code:      "1234",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	}))

	err := service.VerifyOTP(ctx, "maria@example.com", "1234")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.StatusCode(err))

	// Expired codes are purged on sight.
	_, err = verifications.Get(ctx, "maria@example.com")
	require.Error(t, err)
}

func TestVerifyOTP_FormatGuard(t *testing.T) {
	service, _, _ := newAuthService(newStubIdentity(), newStubOTPSender())
	ctx := context.Background()

	for _, code := range []string{"", "123", "12345", "12a4"} {
		err := service.VerifyOTP(ctx, "maria@example.com", code)
		require.Error(t, err, "code %q", code)
		assert.Equal(t, 400, apperrors.StatusCode(err))
	}
}
