package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/ws"
)

type NotificationService struct {
	Repo   *repositories.NotificationRepository
	Hub    *ws.Hub
	Logger *zap.Logger
}

func NewNotificationService(repo *repositories.NotificationRepository, hub *ws.Hub, logger *zap.Logger) *NotificationService {
	return &NotificationService{Repo: repo, Hub: hub, Logger: logger}
}

// Notify stores a notification and pushes it to the user's open sessions.
// Failures are logged, not returned: a broken notification must never fail
// the action that triggered it.
func (s *NotificationService) Notify(ctx context.Context, userID int, kind, title, body, entityKind string, entityID int) {
	notification := &models.Notification{
		UserID:     userID,
		Kind:       kind,
		Title:      title,
		Body:       body,
		EntityKind: entityKind,
		EntityID:   entityID,
	}
	if err := s.Repo.CreateNotification(ctx, notification); err != nil {
		s.Logger.Error("failed to store notification",
			zap.Int("user_id", userID), zap.String("kind", kind), zap.Error(err))
		return
	}
	if s.Hub != nil {
		s.Hub.Push(notification)
	}
}

// List retrieves the user's notifications, optionally unread only
func (s *NotificationService) List(ctx context.Context, userID int, unreadOnly bool) ([]*models.Notification, error) {
	return s.Repo.ListNotifications(ctx, userID, unreadOnly)
}

// CountUnread returns the unread badge count
func (s *NotificationService) CountUnread(ctx context.Context, userID int) (int, error) {
	return s.Repo.CountUnread(ctx, userID)
}

// MarkRead flags one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int) error {
	return s.Repo.MarkRead(ctx, id, userID)
}

// MarkAllRead flags all of the user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) error {
	return s.Repo.MarkAllRead(ctx, userID)
}

// Delete removes one notification
func (s *NotificationService) Delete(ctx context.Context, id, userID int) error {
	return s.Repo.DeleteNotification(ctx, id, userID)
}
