// internal/api/handler/auth.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"chainpilot-wallet/internal/service"
	"chainpilot-wallet/internal/util"
)

// AuthHandler handles HTTP requests for the identity store.
type AuthHandler struct {
	identity service.IdentityService
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identity service.IdentityService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, logger: logger}
}

// CredentialsRequest represents the request body for signup and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Confirm  string `json:"confirm,omitempty"`
}

// Signup handles account creation.
// POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}
	if req.Confirm != "" && req.Confirm != req.Password {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	identity, err := h.identity.Register(req.Username, req.Password)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"message":  "Account created",
		"username": identity.Username,
		"strength": service.PasswordStrength(req.Password),
	})
}

// Login handles authentication.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	session, err := h.identity.Authenticate(req.Username, req.Password)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":  "Logged in",
		"username": session.Username,
		"ts":       session.Ts,
	})
}

// Logout clears the session.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.Logout(); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Logged out"})
}

// ChangePasswordRequest represents the request body for password change.
type ChangePasswordRequest struct {
	Current string `json:"current"`
	Next    string `json:"next"`
	Confirm string `json:"confirm"`
}

// ChangePassword replaces the stored password digest.
// POST /auth/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}
	if req.Next != req.Confirm {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	if err := h.identity.ChangePassword(req.Current, req.Next); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":  "Password updated",
		"strength": service.PasswordStrength(req.Next),
	})
}

// Session reports the current session, if any.
// GET /auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	authed, err := h.identity.IsAuthenticated()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	if !authed {
		respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
			"authenticated": false,
		})
		return
	}

	session, err := h.identity.CurrentSession()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"username":      session.Username,
		"ts":            session.Ts,
	})
}
