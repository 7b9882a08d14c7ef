package repositories

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type SystemSettingRepository struct {
	DB *pgxpool.Pool
}

func NewSystemSettingRepository(db *pgxpool.Pool) *SystemSettingRepository {
	return &SystemSettingRepository{DB: db}
}

func (r *SystemSettingRepository) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	query := `
		SELECT id, setting_key, setting_value, description, updated_at, COALESCE(updated_by_user_id, 0)
		FROM system_settings
		WHERE setting_key = $1
	`
	setting := &models.SystemSetting{}
	err := r.DB.QueryRow(ctx, query, key).Scan(
		&setting.ID, &setting.SettingKey, &setting.SettingValue,
		&setting.Description, &setting.UpdatedAt, &setting.UpdatedByUserID,
	)
	if err != nil {
		return nil, err
	}
	return setting, nil
}

// GetString returns the setting value, or fallback when the key is missing
func (r *SystemSettingRepository) GetString(ctx context.Context, key, fallback string) string {
	setting, err := r.Get(ctx, key)
	if err != nil {
		return fallback
	}
	return setting.SettingValue
}

// GetInt returns the setting parsed as an integer, or fallback when the key
// is missing or not numeric
func (r *SystemSettingRepository) GetInt(ctx context.Context, key string, fallback int) int {
	setting, err := r.Get(ctx, key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(setting.SettingValue)
	if err != nil {
		return fallback
	}
	return n
}

// GetFloat returns the setting parsed as a float, or fallback when the key
// is missing or not numeric
func (r *SystemSettingRepository) GetFloat(ctx context.Context, key string, fallback float64) float64 {
	setting, err := r.Get(ctx, key)
	if err != nil {
		return fallback
	}
	f, err := strconv.ParseFloat(setting.SettingValue, 64)
	if err != nil {
		return fallback
	}
	return f
}

func (r *SystemSettingRepository) List(ctx context.Context) ([]*models.SystemSetting, error) {
	query := `
		SELECT id, setting_key, setting_value, description, updated_at, COALESCE(updated_by_user_id, 0)
		FROM system_settings
		ORDER BY setting_key
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*models.SystemSetting
	for rows.Next() {
		setting := &models.SystemSetting{}
		err := rows.Scan(
			&setting.ID, &setting.SettingKey, &setting.SettingValue,
			&setting.Description, &setting.UpdatedAt, &setting.UpdatedByUserID,
		)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

// Upsert creates a new setting or updates an existing one
func (r *SystemSettingRepository) Upsert(ctx context.Context, key, value, description string, userID int) error {
	query := `
		INSERT INTO system_settings (setting_key, setting_value, description, updated_at, updated_by_user_id)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, $4)
		ON CONFLICT (setting_key)
		DO UPDATE SET setting_value = $2, updated_at = CURRENT_TIMESTAMP, updated_by_user_id = $4
	`
	_, err := r.DB.Exec(ctx, query, key, value, description, userID)
	return err
}
