package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/ecogai/pollution-backend/internal/domain/providers"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// MockAdapter keeps accounts in memory for development and tests.
type MockAdapter struct {
	mu       sync.RWMutex
	accounts map[string]string // email -> password
	sessions map[string]string // access token -> email
}

// NewMockAdapter creates an empty in-memory identity provider.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		accounts: make(map[string]string),
		sessions: make(map[string]string),
	}
}

// CreateUser registers an account, refusing duplicates.
func (m *MockAdapter) CreateUser(ctx context.Context, email, password, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[email]; ok {
		return apperrors.NewConflictError("An account with this email already exists")
	}
	m.accounts[email] = password
	return nil
}

// SignIn checks the stored password and issues random tokens.
func (m *MockAdapter) SignIn(ctx context.Context, email, password string) (*providers.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.accounts[email]
	if !ok || stored != password {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	token := randomToken()
	m.sessions[token] = email
	return &providers.Credentials{
		AccessToken:  token,
		IDToken:      randomToken(),
		RefreshToken: randomToken(),
		ExpiresIn:    3600,
	}, nil
}

// SignOut drops the session for the token.
func (m *MockAdapter) SignOut(ctx context.Context, accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, accessToken)
	return nil
}

func randomToken() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
