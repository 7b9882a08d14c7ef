package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/metrics"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

// Hub fans notifications out to connected sessions. Each connection is
// registered under the authenticated user id, so a push reaches every
// open tab for that user and nobody else.
type Hub struct {
	clients    map[*websocket.Conn]int
	clientsMux sync.Mutex
	broadcast  chan *models.Notification
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]int),
		broadcast: make(chan *models.Notification, 64),
		logger:    logger,
	}
}

// Run pumps the broadcast channel to clients. Call once from main in its
// own goroutine; it exits when the channel is closed.
func (h *Hub) Run() {
	for notification := range h.broadcast {
		h.clientsMux.Lock()
		for conn, userID := range h.clients {
			if userID != notification.UserID {
				continue
			}
			if err := conn.WriteJSON(notification); err != nil {
				conn.Close()
				delete(h.clients, conn)
				metrics.WebsocketClients.Set(float64(len(h.clients)))
			}
		}
		h.clientsMux.Unlock()
	}
}

// Register adds a connection for a user.
func (h *Hub) Register(conn *websocket.Conn, userID int) {
	h.clientsMux.Lock()
	h.clients[conn] = userID
	metrics.WebsocketClients.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()
}

// Unregister drops a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.clientsMux.Lock()
	delete(h.clients, conn)
	metrics.WebsocketClients.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()
}

// Push queues a notification for delivery. Never blocks the caller: when
// the channel is full the push is dropped, the row is still in the
// database and shows up on the next list.
func (h *Hub) Push(notification *models.Notification) {
	select {
	case h.broadcast <- notification:
	default:
		h.logger.Warn("notification push dropped, broadcast channel full",
			zap.Int("user_id", notification.UserID))
	}
}

// ClientCount reports connected sessions, used by the admin stats endpoint.
func (h *Hub) ClientCount() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}
