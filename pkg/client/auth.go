package client

import (
	"context"
	"errors"
	"fmt"
)

// SignUpRequest carries the signup fields.
type SignUpRequest struct {
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	Name             string   `json:"name"`
	Phone            string   `json:"phone,omitempty"`
	HealthConditions []string `json:"healthConditions,omitempty"`
	Barangay         string   `json:"barangay,omitempty"`
	City             string   `json:"city,omitempty"`
}

type signUpResult struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type loginResult struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int32  `json:"expiresIn"`
}

// SignUp registers an account. On success the session's UserID is set;
// on failure the session is untouched.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (string, error) {
	var result signUpResult
	if err := c.Post(ctx, "/auth/signup", req, &result); err != nil {
		return "", err
	}
	c.session.UserID = result.UserID
	return result.UserID, nil
}

// Login signs in and, on success only, installs the returned identity
// and tokens in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var result loginResult
	if err := c.Post(ctx, "/auth/login", body, &result); err != nil {
		return err
	}

	c.session.UserID = result.UserID
	c.session.AccessToken = result.AccessToken
	c.session.IDToken = result.IDToken
	c.session.RefreshToken = result.RefreshToken
	return nil
}

// Logout revokes the server session and clears the local one.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.Post(ctx, "/auth/logout", map[string]string{}, nil); err != nil {
		return err
	}
	*c.session = Session{}
	return nil
}

// SendOTP asks the server to deliver a verification code.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	return c.Post(ctx, "/auth/send-otp", map[string]string{"email": email}, nil)
}

// VerifyOTP submits a verification code. The code must be exactly four
// digits; anything else is rejected before any network I/O.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) error {
	if !isFourDigits(code) {
		return errors.New("verification code must be 4 digits")
	}
	body := map[string]string{"email": email, "code": code}
	return c.Post(ctx, "/auth/verify-otp", body, nil)
}

// GetProfile fetches a user's profile.
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	if err := c.Get(ctx, fmt.Sprintf("/profile/%s", userID), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := c.Put(ctx, fmt.Sprintf("/profile/%s", userID), update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func isFourDigits(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
