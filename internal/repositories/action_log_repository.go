package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type ActionLogRepository struct {
	DB *pgxpool.Pool
}

func NewActionLogRepository(db *pgxpool.Pool) *ActionLogRepository {
	return &ActionLogRepository{DB: db}
}

// CreateActionLog records a privileged action for the audit trail
func (r *ActionLogRepository) CreateActionLog(ctx context.Context, log *models.ActionLog) error {
	query := `
		INSERT INTO action_logs (actor_id, action, entity_kind, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.Exec(ctx, query,
		log.ActorID, log.Action, log.EntityKind, log.EntityID, log.Detail)
	return err
}

// ListActionLogs retrieves the audit trail with actor details, newest first
func (r *ActionLogRepository) ListActionLogs(ctx context.Context, limit int) ([]map[string]interface{}, error) {
	query := `
		SELECT al.id, al.actor_id, u.name AS actor_name, u.email AS actor_email,
		       al.action, al.entity_kind, al.entity_id, al.detail, al.created_at
		FROM action_logs al
		JOIN users u ON u.id = al.actor_id
		ORDER BY al.created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []map[string]interface{}
	for rows.Next() {
		var (
			id         int
			actorID    int
			entityID   int
			actorName  string
			actorEmail string
			action     string
			entityKind string
			detail     string
			createdAt  time.Time
		)
		if err := rows.Scan(
			&id, &actorID, &actorName, &actorEmail,
			&action, &entityKind, &entityID, &detail, &createdAt,
		); err != nil {
			return nil, err
		}

		logs = append(logs, map[string]interface{}{
			"id":          id,
			"actor_id":    actorID,
			"actor_name":  actorName,
			"actor_email": actorEmail,
			"action":      action,
			"entity_kind": entityKind,
			"entity_id":   entityID,
			"detail":      detail,
			"created_at":  createdAt,
		})
	}
	return logs, rows.Err()
}
