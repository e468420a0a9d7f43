package providers

import "context"

// Credentials is the token set returned after a successful sign-in.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int32  `json:"expiresIn"`
}

// IdentityProvider wraps the user-pool operations the API needs. The
// production adapter talks to Cognito; the mock adapter keeps users in
// memory for development and tests.
type IdentityProvider interface {
	// CreateUser registers a user with a permanent password. Returns a
	// conflict error when the email is already registered.
	CreateUser(ctx context.Context, email, password, name string) error

	// SignIn exchanges credentials for tokens.
	SignIn(ctx context.Context, email, password string) (*Credentials, error)

	// SignOut revokes every session tied to the access token.
	SignOut(ctx context.Context, accessToken string) error
}
