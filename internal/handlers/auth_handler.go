package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/auth"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

type AuthHandler struct {
	Service *services.UserService
}

func NewAuthHandler(s *services.UserService) *AuthHandler {
	return &AuthHandler{Service: s}
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	authResp, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondFieldError(w, http.StatusConflict, err.Error(), "email")
			return
		}
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, authResp)
}

// Confirm matches the emailed confirmation code against the account
func (h *AuthHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Confirm(r.Context(), &req); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "email confirmed"})
}

// ResendConfirmation issues a fresh code for an unconfirmed account
func (h *AuthHandler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.Service.ResendConfirmation(r.Context(), req.Email); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "confirmation code sent"})
}

// Login handles user authentication. Accounts with 2FA enabled get a
// challenge response instead of a session; the client finishes at
// /auth/2fa/verify with the temp token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	authResp, challenge, err := h.Service.Login(r.Context(), &req, getIPAddress(r), r.UserAgent())
	if err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if challenge != nil {
		respondJSON(w, http.StatusOK, challenge)
		return
	}
	respondJSON(w, http.StatusOK, authResp)
}

// VerifyTwoFactor completes a 2FA login (step 2)
func (h *AuthHandler) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TempToken == "" || req.Code == "" {
		respondError(w, http.StatusBadRequest, "temp token and verification code are required")
		return
	}

	authResp, err := h.Service.VerifyTwoFactor(r.Context(), &req, getIPAddress(r), r.UserAgent())
	if err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, authResp)
}

// Refresh exchanges a refresh token for a new session pair
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		respondError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	authResp, err := h.Service.Refresh(r.Context(), &req)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, authResp)
}

// PasswordScore rates a candidate password for the signup form meter
func (h *AuthHandler) PasswordScore(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordStrengthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondJSON(w, http.StatusOK, auth.ScorePassword(req.Password))
}

// Me returns the authenticated account
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateMe updates the caller's own account fields
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.UpdateMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.UpdateMetadata(r.Context(), userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ChangePassword verifies the current password before setting a new one
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "current and new password are required")
		return
	}

	if err := h.Service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}
