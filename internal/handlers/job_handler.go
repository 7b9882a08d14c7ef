package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

type JobHandler struct {
	Service *services.JobService
}

func NewJobHandler(s *services.JobService) *JobHandler {
	return &JobHandler{Service: s}
}

func (h *JobHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreateJobListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing, err := h.Service.CreateListing(r.Context(), userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, listing)
}

// ListListings filters open listings by department, location and free text
func (h *JobHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listings, err := h.Service.ListListings(r.Context(), q.Get("status"), q.Get("department"), q.Get("location"), q.Get("q"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (h *JobHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := h.Service.GetListing(r.Context(), listingID)
	if err != nil {
		respondError(w, http.StatusNotFound, "job listing not found")
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *JobHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	listingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateJobListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing, err := h.Service.UpdateListing(r.Context(), listingID, userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *JobHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	listingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteListing(r.Context(), listingID, userID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "listing deleted"})
}

// Apply submits an application with an optional cover note
func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	listingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	application, err := h.Service.Apply(r.Context(), listingID, userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, application)
}

// ListApplications shows applicants to the listing poster
func (h *JobHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	listingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	applications, err := h.Service.ListApplications(r.Context(), listingID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, applications)
}

// ListMyApplications shows the caller's own applications across listings
func (h *JobHandler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	applications, err := h.Service.ListMyApplications(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	respondJSON(w, http.StatusOK, applications)
}

// Decide accepts or declines an application (listing poster only)
func (h *JobHandler) Decide(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	applicationID, err := pathID(r, "applicationID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	application, err := h.Service.Decide(r.Context(), applicationID, userID, req.Status)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, application)
}
