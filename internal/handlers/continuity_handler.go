package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

type ContinuityHandler struct {
	Service  *services.ContinuityService
	Settings *services.SystemSettingService
}

func NewContinuityHandler(s *services.ContinuityService, settings *services.SystemSettingService) *ContinuityHandler {
	return &ContinuityHandler{Service: s, Settings: settings}
}

func (h *ContinuityHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.CreateContinuityNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.Service.CreateNote(r.Context(), productionID, userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

// ListNotes filters by scene number and category when provided
func (h *ContinuityHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	notes, err := h.Service.ListNotes(r.Context(), productionID, userID, q.Get("scene"), q.Get("category"))
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

func (h *ContinuityHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	noteID, err := pathID(r, "noteID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateContinuityNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.Service.UpdateNote(r.Context(), productionID, userID, noteID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (h *ContinuityHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	noteID, err := pathID(r, "noteID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteNote(r.Context(), productionID, userID, noteID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}

// UploadPhoto stores a continuity reference photo for a scene
func (h *ContinuityHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

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
		respondError(w, http.StatusBadRequest, "photo must be a JPEG, PNG or WebP image")
		return
	}

	photo, err := h.Service.UploadPhoto(r.Context(), productionID, userID,
		r.FormValue("scene_number"), r.FormValue("caption"), header.Filename, contentType, file)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, photo)
}

func (h *ContinuityHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	photos, err := h.Service.ListPhotos(r.Context(), productionID, userID, r.URL.Query().Get("scene"))
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, photos)
}

func (h *ContinuityHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	photoID, err := pathID(r, "photoID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateContinuityPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	photo, err := h.Service.UpdatePhoto(r.Context(), productionID, userID, photoID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, photo)
}

func (h *ContinuityHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	photoID, err := pathID(r, "photoID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeletePhoto(r.Context(), productionID, userID, photoID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "photo deleted"})
}
