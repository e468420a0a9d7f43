package handlers

import (
	"net/http"
	"strings"

	"github.com/ecogai/pollution-backend/internal/application/services"
)

// AuthHandler handles signup, login, logout and OTP endpoints.
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input services.SignUpInput
	if err := decodeBody(r, &input); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}

	user, err := h.auth.SignUp(r.Context(), input)
	if err != nil {
		respondAppError(w, err, "signup failed")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{
		"userId": user.ID,
		"email":  user.Email,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &input); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}

	result, err := h.auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		respondAppError(w, err, "login failed")
		return
	}

	respondSuccess(w, http.StatusOK, result)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Authorization header is required")
		return
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		respondAppError(w, err, "logout failed")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"loggedOut": true})
}

// SendOTP handles POST /auth/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &input); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}

	if err := h.auth.SendOTP(r.Context(), input.Email); err != nil {
		respondAppError(w, err, "failed to send verification code")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"sent": true})
}

// VerifyOTP handles POST /auth/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := decodeBody(r, &input); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}

	if err := h.auth.VerifyOTP(r.Context(), input.Email, input.Code); err != nil {
		respondAppError(w, err, "verification failed")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"verified": true})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
