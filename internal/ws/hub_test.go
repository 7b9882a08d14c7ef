package ws

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(zap.NewNop())

	connA := &websocket.Conn{}
	connB := &websocket.Conn{}

	assert.Equal(t, 0, hub.ClientCount())

	hub.Register(connA, 1)
	hub.Register(connB, 2)
	assert.Equal(t, 2, hub.ClientCount())

	// Re-registering the same connection replaces, not duplicates.
	hub.Register(connA, 1)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Unregister(connA)
	assert.Equal(t, 1, hub.ClientCount())

	// Unregistering an unknown connection is a no-op.
	hub.Unregister(connA)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(connB)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubPushNeverBlocks(t *testing.T) {
	hub := NewHub(zap.NewNop())

	// Nobody is draining the broadcast channel; pushes past its capacity
	// must drop instead of hanging the caller.
	for i := 0; i < 200; i++ {
		hub.Push(&models.Notification{UserID: 1, Kind: models.NotifyKindReceiptReview})
	}
}

func TestHubPushToQueue(t *testing.T) {
	hub := NewHub(zap.NewNop())

	notification := &models.Notification{
		ID:     10,
		UserID: 3,
		Kind:   models.NotifyKindJobApplication,
		Title:  "New applicant",
	}
	hub.Push(notification)

	select {
	case got := <-hub.broadcast:
		assert.Equal(t, notification, got)
	default:
		t.Fatal("expected notification on broadcast channel")
	}
}
