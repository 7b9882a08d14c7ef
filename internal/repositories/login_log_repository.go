package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: db}
}

// CreateLoginLog records a successful sign-in
func (r *LoginLogRepository) CreateLoginLog(ctx context.Context, userID int, ipAddress, userAgent string) error {
	query := `
		INSERT INTO login_logs (user_id, ip_address, user_agent)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.Exec(ctx, query, userID, ipAddress, userAgent)
	return err
}

// ListLoginLogs retrieves recent sign-ins with user details, newest first
func (r *LoginLogRepository) ListLoginLogs(ctx context.Context, limit int) ([]map[string]interface{}, error) {
	query := `
		SELECT ll.id, ll.user_id, u.name AS user_name, u.email AS user_email, u.role,
		       ll.ip_address, ll.user_agent, ll.created_at
		FROM login_logs ll
		JOIN users u ON u.id = ll.user_id
		ORDER BY ll.created_at DESC
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
			id        int
			userID    int
			userName  string
			userEmail string
			role      string
			ipAddress string
			userAgent string
			createdAt time.Time
		)
		if err := rows.Scan(
			&id, &userID, &userName, &userEmail, &role,
			&ipAddress, &userAgent, &createdAt,
		); err != nil {
			return nil, err
		}

		logs = append(logs, map[string]interface{}{
			"id":         id,
			"user_id":    userID,
			"user_name":  userName,
			"user_email": userEmail,
			"role":       role,
			"ip_address": ipAddress,
			"user_agent": userAgent,
			"created_at": createdAt,
		})
	}
	return logs, rows.Err()
}
