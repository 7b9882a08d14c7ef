package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TOTPRepository struct {
	DB *pgxpool.Pool
}

func NewTOTPRepository(db *pgxpool.Pool) *TOTPRepository {
	return &TOTPRepository{DB: db}
}

// RecordAttempt logs a 2FA verification attempt for rate limiting
func (r *TOTPRepository) RecordAttempt(ctx context.Context, userID int, ipAddress string, success bool) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO totp_verification_attempts (user_id, ip_address, success) VALUES ($1, $2, $3)`,
		userID, ipAddress, success)
	return err
}

// FailuresSince counts failed attempts for a user after the cutoff
func (r *TOTPRepository) FailuresSince(ctx context.Context, userID int, cutoff time.Time) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM totp_verification_attempts
		 WHERE user_id = $1 AND success = false AND created_at > $2`,
		userID, cutoff).Scan(&count)
	return count, err
}

// FailuresFromIPSince counts failed attempts from an address after the cutoff
func (r *TOTPRepository) FailuresFromIPSince(ctx context.Context, ipAddress string, cutoff time.Time) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM totp_verification_attempts
		 WHERE ip_address = $1 AND success = false AND created_at > $2`,
		ipAddress, cutoff).Scan(&count)
	return count, err
}

// PruneBefore drops attempt rows older than the cutoff
func (r *TOTPRepository) PruneBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM totp_verification_attempts WHERE created_at < $1`, cutoff)
	return err
}
