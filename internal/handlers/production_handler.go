package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

type ProductionHandler struct {
	Service *services.ProductionService
}

func NewProductionHandler(s *services.ProductionService) *ProductionHandler {
	return &ProductionHandler{Service: s}
}

func (h *ProductionHandler) CreateProduction(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreateProductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	production, err := h.Service.CreateProduction(r.Context(), userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, production)
}

func (h *ProductionHandler) ListProductions(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	productions, err := h.Service.ListProductions(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list productions")
		return
	}
	respondJSON(w, http.StatusOK, productions)
}

func (h *ProductionHandler) GetProduction(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	production, err := h.Service.GetProduction(r.Context(), productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, production)
}

func (h *ProductionHandler) UpdateProduction(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateProductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	production, err := h.Service.UpdateProduction(r.Context(), productionID, userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, production)
}

func (h *ProductionHandler) DeleteProduction(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteProduction(r.Context(), productionID, userID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "production deleted"})
}

func (h *ProductionHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AddMember(r.Context(), productionID, userID, &req); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "member added"})
}

func (h *ProductionHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	memberID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.RemoveMember(r.Context(), productionID, userID, memberID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "member removed"})
}

func (h *ProductionHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	members, err := h.Service.ListMembers(r.Context(), productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

func (h *ProductionHandler) CreateShootDay(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.CreateShootDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	day, err := h.Service.CreateShootDay(r.Context(), productionID, userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, day)
}

func (h *ProductionHandler) ListShootDays(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	days, err := h.Service.ListShootDays(r.Context(), productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, days)
}

func (h *ProductionHandler) UpdateShootDay(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dayID, err := pathID(r, "dayID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateShootDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	day, err := h.Service.UpdateShootDay(r.Context(), productionID, userID, dayID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, day)
}

func (h *ProductionHandler) DeleteShootDay(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dayID, err := pathID(r, "dayID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteShootDay(r.Context(), productionID, userID, dayID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "shoot day deleted"})
}

func (h *ProductionHandler) CreateScene(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.CreateSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scene, err := h.Service.CreateScene(r.Context(), productionID, userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, scene)
}

func (h *ProductionHandler) ListScenes(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	scenes, err := h.Service.ListScenes(r.Context(), productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, scenes)
}

func (h *ProductionHandler) UpdateScene(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sceneID, err := pathID(r, "sceneID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scene, err := h.Service.UpdateScene(r.Context(), productionID, userID, sceneID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, scene)
}

func (h *ProductionHandler) DeleteScene(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sceneID, err := pathID(r, "sceneID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteScene(r.Context(), productionID, userID, sceneID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "scene deleted"})
}

func (h *ProductionHandler) CreateBudgetLine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.CreateBudgetLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	line, err := h.Service.CreateBudgetLine(r.Context(), productionID, userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, line)
}

// ListBudget returns budget lines with actual spend aggregated from mapped,
// verified receipts.
func (h *ProductionHandler) ListBudget(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines, err := h.Service.ListBudget(r.Context(), productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lines)
}

func (h *ProductionHandler) UpdateBudgetLine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	lineID, err := pathID(r, "lineID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateBudgetLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	line, err := h.Service.UpdateBudgetLine(r.Context(), productionID, userID, lineID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, line)
}

func (h *ProductionHandler) DeleteBudgetLine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	lineID, err := pathID(r, "lineID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteBudgetLine(r.Context(), productionID, userID, lineID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "budget line deleted"})
}
