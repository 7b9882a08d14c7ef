package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// CreateNotification inserts a notification for a user
func (r *NotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, kind, title, body, entity_kind, entity_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		notification.UserID, notification.Kind, notification.Title, notification.Body,
		notification.EntityKind, notification.EntityID,
	).Scan(&notification.ID, &notification.CreatedAt)
}

// ListNotifications retrieves a user's notifications, optionally unread only
func (r *NotificationRepository) ListNotifications(ctx context.Context, userID int, unreadOnly bool) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, kind, title, body, entity_kind, entity_id, read, created_at
		FROM notifications
		WHERE user_id = $1
		  AND (NOT $2 OR read = false)
		ORDER BY read ASC, created_at DESC
		LIMIT 100
	`
	rows, err := r.DB.Query(ctx, query, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		notification := &models.Notification{}
		err := rows.Scan(
			&notification.ID, &notification.UserID, &notification.Kind,
			&notification.Title, &notification.Body,
			&notification.EntityKind, &notification.EntityID,
			&notification.Read, &notification.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

// CountUnread returns the unread badge count
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = false`,
		userID).Scan(&count)
	return count, err
}

// MarkRead flags one notification as read; scoped to the owner
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`,
		id, userID)
	return err
}

// MarkAllRead flags every notification for the user as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`,
		userID)
	return err
}

// DeleteNotification removes one notification; scoped to the owner
func (r *NotificationRepository) DeleteNotification(ctx context.Context, id, userID int) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}
