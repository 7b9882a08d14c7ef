package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

type TOTPHandler struct {
	Service *services.TOTPService
	Users   *services.UserService
}

func NewTOTPHandler(totpService *services.TOTPService, users *services.UserService) *TOTPHandler {
	return &TOTPHandler{
		Service: totpService,
		Users:   users,
	}
}

func totpError(w http.ResponseWriter, err error, fallback string) {
	var totpErr *services.TOTPError
	if errors.As(err, &totpErr) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, fallback)
}

// Setup initiates 2FA enrollment, returning the secret and otpauth URL
func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	user, err := h.Users.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if user.TOTPEnabled {
		respondError(w, http.StatusBadRequest, "2FA is already enabled")
		return
	}

	response, err := h.Service.GenerateSetup(r.Context(), user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate 2FA setup")
		return
	}
	respondJSON(w, http.StatusOK, response)
}

// Enable verifies the first code and turns 2FA on, returning backup codes
func (h *TOTPHandler) Enable(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.TOTPEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "verification code is required")
		return
	}

	response, err := h.Service.VerifyAndEnable(r.Context(), userID, req.Code, getIPAddress(r))
	if err != nil {
		totpError(w, err, "failed to enable 2FA")
		return
	}
	respondJSON(w, http.StatusOK, response)
}

// Disable turns off 2FA after verifying password and a current code
func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.TOTPDisableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Password == "" || req.Code == "" {
		respondError(w, http.StatusBadRequest, "password and verification code are required")
		return
	}

	if err := h.Service.Disable(r.Context(), userID, req.Password, req.Code); err != nil {
		totpError(w, err, "failed to disable 2FA")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "2FA disabled"})
}

// Status returns the 2FA state for the current user
func (h *TOTPHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	status, err := h.Service.GetStatus(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get 2FA status")
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// RegenerateBackupCodes replaces the backup code set (requires password)
func (h *TOTPHandler) RegenerateBackupCodes(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.RegenerateBackupCodesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "password is required")
		return
	}

	response, err := h.Service.RegenerateBackupCodes(r.Context(), userID, req.Password)
	if err != nil {
		totpError(w, err, "failed to regenerate backup codes")
		return
	}
	respondJSON(w, http.StatusOK, response)
}
