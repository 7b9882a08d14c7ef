package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, confirmed, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.Confirmed, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, confirmed,
		       COALESCE(totp_secret, ''), COALESCE(totp_enabled, false), totp_verified_at,
		       COALESCE(backup_codes, ''), is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	user := &models.User{}
	err := r.DB.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Confirmed,
		&user.TOTPSecret, &user.TOTPEnabled, &user.TOTPVerifiedAt,
		&user.BackupCodes, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, confirmed,
		       COALESCE(totp_secret, ''), COALESCE(totp_enabled, false), totp_verified_at,
		       COALESCE(backup_codes, ''), is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	user := &models.User{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Confirmed,
		&user.TOTPSecret, &user.TOTPEnabled, &user.TOTPVerifiedAt,
		&user.BackupCodes, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// EmailExists checks whether an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetConfirmationCode stores the emailed signup code with its expiry
func (r *UserRepository) SetConfirmationCode(ctx context.Context, userID int, code string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET confirmation_code = $1, confirmation_expires_at = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	_, err := r.DB.Exec(ctx, query, code, expiresAt, userID)
	return err
}

// ConfirmUser marks the account confirmed when the code matches and has not
// expired. Returns false when no row matched.
func (r *UserRepository) ConfirmUser(ctx context.Context, email, code string) (bool, error) {
	query := `
		UPDATE users
		SET confirmed = true, confirmation_code = NULL, confirmation_expires_at = NULL,
		    updated_at = CURRENT_TIMESTAMP
		WHERE email = $1
		  AND confirmation_code = $2
		  AND confirmation_expires_at > CURRENT_TIMESTAMP
	`
	tag, err := r.DB.Exec(ctx, query, email, code)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateUser updates a user's name, email and role
func (r *UserRepository) UpdateUser(ctx context.Context, id int, name, email, role string) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, role = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`
	_, err := r.DB.Exec(ctx, query, name, email, role, id)
	return err
}

// UpdateName updates the caller's own display name
func (r *UserRepository) UpdateName(ctx context.Context, id int, name string) error {
	query := `UPDATE users SET name = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.DB.Exec(ctx, query, name, id)
	return err
}

// UpdatePassword updates a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.DB.Exec(ctx, query, passwordHash, id)
	return err
}

// SetActive suspends or restores an account
func (r *UserRepository) SetActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE users SET is_active = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.DB.Exec(ctx, query, active, id)
	return err
}

// ListUsers retrieves all users ordered by creation date
func (r *UserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, confirmed,
		       COALESCE(totp_secret, ''), COALESCE(totp_enabled, false), totp_verified_at,
		       COALESCE(backup_codes, ''), is_active, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Confirmed,
			&user.TOTPSecret, &user.TOTPEnabled, &user.TOTPVerifiedAt,
			&user.BackupCodes, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DeleteUser removes a user account
func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// SetTOTPSecret stores the TOTP secret during 2FA setup (not yet enabled)
func (r *UserRepository) SetTOTPSecret(ctx context.Context, userID int, secret string) error {
	query := `UPDATE users SET totp_secret = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.DB.Exec(ctx, query, secret, userID)
	return err
}

// EnableTOTP activates 2FA after the first successful verification
func (r *UserRepository) EnableTOTP(ctx context.Context, userID int, backupCodes string) error {
	query := `
		UPDATE users
		SET totp_enabled = true, totp_verified_at = CURRENT_TIMESTAMP, backup_codes = $1,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	_, err := r.DB.Exec(ctx, query, backupCodes, userID)
	return err
}

// DisableTOTP turns 2FA off and clears the stored secret and backup codes
func (r *UserRepository) DisableTOTP(ctx context.Context, userID int) error {
	query := `
		UPDATE users
		SET totp_enabled = false, totp_secret = NULL, totp_verified_at = NULL, backup_codes = NULL,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	_, err := r.DB.Exec(ctx, query, userID)
	return err
}

// UpdateBackupCodes replaces the remaining backup codes after one is consumed
func (r *UserRepository) UpdateBackupCodes(ctx context.Context, userID int, backupCodes string) error {
	query := `UPDATE users SET backup_codes = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.DB.Exec(ctx, query, backupCodes, userID)
	return err
}
