package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

type TakeHandler struct {
	Service *services.TakeService
}

func NewTakeHandler(s *services.TakeService) *TakeHandler {
	return &TakeHandler{Service: s}
}

func (h *TakeHandler) CreateTake(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.CreateTakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	take, err := h.Service.CreateTake(r.Context(), productionID, userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, take)
}

// ListTakes filters by scene number and/or shoot day when provided
func (h *TakeHandler) ListTakes(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	shootDayID := 0
	if raw := q.Get("shoot_day_id"); raw != "" {
		shootDayID, err = strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid shoot_day_id")
			return
		}
	}

	takes, err := h.Service.ListTakes(r.Context(), productionID, userID, q.Get("scene"), shootDayID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, takes)
}

func (h *TakeHandler) GetTake(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	takeID, err := pathID(r, "takeID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	take, err := h.Service.GetTake(r.Context(), productionID, userID, takeID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, take)
}

// NextTakeNumber tells the logger what number the next take of a scene
// gets, so the slate and the log stay in step.
func (h *TakeHandler) NextTakeNumber(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	scene := r.URL.Query().Get("scene")
	if scene == "" {
		respondError(w, http.StatusBadRequest, "scene query parameter is required")
		return
	}

	next, err := h.Service.NextTakeNumber(r.Context(), productionID, userID, scene)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, next)
}

func (h *TakeHandler) UpdateTake(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	takeID, err := pathID(r, "takeID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateTakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	take, err := h.Service.UpdateTake(r.Context(), productionID, userID, takeID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, take)
}

func (h *TakeHandler) DeleteTake(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	takeID, err := pathID(r, "takeID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteTake(r.Context(), productionID, userID, takeID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "take deleted"})
}

// SceneSummary aggregates take counts and print status per scene
func (h *TakeHandler) SceneSummary(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.Service.SceneSummary(r.Context(), productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
