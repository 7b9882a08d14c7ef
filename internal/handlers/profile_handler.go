package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

type ProfileHandler struct {
	Service  *services.ProfileService
	Settings *services.SystemSettingService
}

func NewProfileHandler(s *services.ProfileService, settings *services.SystemSettingService) *ProfileHandler {
	return &ProfileHandler{Service: s, Settings: settings}
}

// GetMine returns the caller's profile
func (h *ProfileHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	profile, err := h.Service.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "profile not found")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// GetByUser returns any member's public profile
func (h *ProfileHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.Service.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "profile not found")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// Update replaces the caller's profile fields
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.Service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// UploadAvatar accepts a multipart image and stores it as the profile picture
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	maxBytes := uploadLimitBytes(r, h.Settings)
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		respondError(w, http.StatusBadRequest, "file exceeds the upload size limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isImageContentType(contentType) {
		respondError(w, http.StatusBadRequest, "avatar must be a JPEG, PNG or WebP image")
		return
	}

	profile, err := h.Service.UploadAvatar(r.Context(), userID, header.Filename, contentType, file)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// Search filters the member directory by department, location and free text
func (h *ProfileHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	profiles, err := h.Service.SearchProfiles(r.Context(), q.Get("department"), q.Get("location"), q.Get("q"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "search failed")
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}
