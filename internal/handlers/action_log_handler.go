package handlers

import (
	"net/http"
	"strconv"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
)

// ActionLogHandler serves the admin audit trail: privileged actions and
// sign-in history.
type ActionLogHandler struct {
	Repo      *repositories.ActionLogRepository
	LoginLogs *repositories.LoginLogRepository
}

func NewActionLogHandler(repo *repositories.ActionLogRepository, loginLogs *repositories.LoginLogRepository) *ActionLogHandler {
	return &ActionLogHandler{Repo: repo, LoginLogs: loginLogs}
}

func auditLimit(r *http.Request) int {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	return limit
}

func (h *ActionLogHandler) ListActionLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Repo.ListActionLogs(r.Context(), auditLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list action logs")
		return
	}
	respondJSON(w, http.StatusOK, logs)
}

func (h *ActionLogHandler) ListLoginLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.LoginLogs.ListLoginLogs(r.Context(), auditLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list login logs")
		return
	}
	respondJSON(w, http.StatusOK, logs)
}
