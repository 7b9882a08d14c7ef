package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/ws"
)

type NotificationHandler struct {
	Service *services.NotificationService
	Hub     *ws.Hub
	Auth    *middleware.AuthMiddleware
	Logger  *zap.Logger

	upgrader websocket.Upgrader
}

func NewNotificationHandler(s *services.NotificationService, hub *ws.Hub, auth *middleware.AuthMiddleware, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		Service: s,
		Hub:     hub,
		Auth:    auth,
		Logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser origins are vetted by the CORS layer for the REST
			// routes; the socket authenticates with a token instead.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// List returns the caller's notifications, optionally unread only
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	notifications, err := h.Service.List(r.Context(), userID, r.URL.Query().Get("unread") == "true")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	count, err := h.Service.CountUnread(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count notifications")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"unread": count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.MarkRead(r.Context(), id, userID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "marked read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.Service.MarkAllRead(r.Context(), userID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to mark notifications read")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "all marked read"})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.Delete(r.Context(), id, userID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "notification deleted"})
}

// Websocket upgrades the connection and streams notifications as they are
// created. Browsers cannot set an Authorization header on a socket, so the
// token rides in the query string.
func (h *NotificationHandler) Websocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "token query parameter is required")
		return
	}

	user, err := h.Auth.ResolveToken(r.Context(), token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	if !user.IsActive {
		respondError(w, http.StatusForbidden, "account suspended")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.Hub.Register(conn, user.ID)
	defer func() {
		h.Hub.Unregister(conn)
		conn.Close()
	}()

	// Drain the read side to notice the client going away. Inbound
	// messages carry no meaning on this socket.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
