package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

type GreenroomHandler struct {
	Service *services.GreenroomService
}

func NewGreenroomHandler(s *services.GreenroomService) *GreenroomHandler {
	return &GreenroomHandler{Service: s}
}

// SubmitProject enters a project into the current contest cycle
func (h *GreenroomHandler) SubmitProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.SubmitProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.Service.SubmitProject(r.Context(), userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

// ListProjects shows approved projects to members; admins additionally see
// pending and rejected entries via the status filter.
func (h *GreenroomHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	projects, err := h.Service.ListProjects(r.Context(), q.Get("cycle"), q.Get("status"), middleware.IsAdmin(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// ListMine returns the caller's own submissions regardless of status
func (h *GreenroomHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	projects, err := h.Service.ListMyProjects(r.Context(), userID, r.URL.Query().Get("cycle"))
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

func (h *GreenroomHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.Service.GetProject(r.Context(), projectID, userID, middleware.IsAdmin(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// UpdateProject edits a pending submission; approved projects are frozen
func (h *GreenroomHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.Service.UpdateProject(r.Context(), projectID, userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// SetStatus is the admin approve/reject decision
func (h *GreenroomHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.GetUserIDFromContext(r.Context())
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.SetProjectStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.Service.SetStatus(r.Context(), projectID, adminID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *GreenroomHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteProject(r.Context(), projectID, userID, middleware.IsAdmin(r.Context())); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "project withdrawn"})
}

// GrantTickets sets a member's voting allowance for the cycle (admin)
func (h *GreenroomHandler) GrantTickets(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.GrantTicketsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticket, err := h.Service.GrantTickets(r.Context(), adminID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

// MyTicket shows the caller's remaining votes for the active cycle
func (h *GreenroomHandler) MyTicket(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	ticket, err := h.Service.MyTicket(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

// CastVote spends one ticket on an approved project
func (h *GreenroomHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	vote, err := h.Service.CastVote(r.Context(), projectID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vote)
}

func (h *GreenroomHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	votes, err := h.Service.MyVotes(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, votes)
}

// Results tallies votes per approved project for a cycle
func (h *GreenroomHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.Service.Results(r.Context(), r.URL.Query().Get("cycle"))
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}
