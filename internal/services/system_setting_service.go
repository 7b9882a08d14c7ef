package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/cache"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
)

type SystemSettingService struct {
	Repo       *repositories.SystemSettingRepository
	ActionLogs *repositories.ActionLogRepository
	Logger     *zap.Logger

	// DefaultUploadMB seeds the upload cap until an admin sets the
	// runtime value; comes from config at startup.
	DefaultUploadMB int
}

func NewSystemSettingService(repo *repositories.SystemSettingRepository, actionLogs *repositories.ActionLogRepository, defaultUploadMB int, logger *zap.Logger) *SystemSettingService {
	return &SystemSettingService{Repo: repo, ActionLogs: actionLogs, DefaultUploadMB: defaultUploadMB, Logger: logger}
}

func (s *SystemSettingService) GetSetting(ctx context.Context, key string) (*models.SystemSetting, error) {
	return s.Repo.Get(ctx, key)
}

// UploadMaxBytes is the request body cap for file uploads, admin-tunable
// at runtime through the upload_max_size_mb setting.
func (s *SystemSettingService) UploadMaxBytes(ctx context.Context) int64 {
	mb := s.Repo.GetInt(ctx, models.SettingUploadMaxSizeMB, s.DefaultUploadMB)
	if mb <= 0 {
		mb = s.DefaultUploadMB
	}
	return int64(mb) << 20
}

func (s *SystemSettingService) ListSettings(ctx context.Context) ([]*models.SystemSetting, error) {
	return s.Repo.List(ctx)
}

// UpsertSetting creates or updates a setting. Admin only; the handler
// enforces the role.
func (s *SystemSettingService) UpsertSetting(ctx context.Context, key, value, description string, adminID int) error {
	if key == "" {
		return errors.New("setting key is required")
	}
	if err := validateSettingValue(key, value); err != nil {
		return err
	}
	if err := s.Repo.Upsert(ctx, key, value, description, adminID); err != nil {
		return err
	}
	cache.InvalidateSettingCaches(ctx)

	logErr := s.ActionLogs.CreateActionLog(ctx, &models.ActionLog{
		ActorID:    adminID,
		Action:     "update_setting",
		EntityKind: "setting",
		Detail:     fmt.Sprintf("%s = %s", key, value),
	})
	if logErr != nil {
		s.Logger.Error("failed to record setting change", zap.Error(logErr))
	}
	return nil
}

// validateSettingValue type-checks values for the keys services read back.
// Unknown keys are stored as-is.
func validateSettingValue(key, value string) error {
	switch key {
	case models.SettingGreenroomAllowance, models.SettingUploadMaxSizeMB:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return errors.New("value must be a non-negative integer")
		}
	case models.SettingAutoApproveLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return errors.New("value must be a non-negative number")
		}
	case models.SettingOCREngine:
		if value != "text" && value != "openai" {
			return errors.New("ocr engine must be text or openai")
		}
	}
	return nil
}
