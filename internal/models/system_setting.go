package models

import "time"

type SystemSetting struct {
	ID              int       `json:"id"`
	SettingKey      string    `json:"setting_key"`
	SettingValue    string    `json:"setting_value"`
	Description     string    `json:"description"`
	UpdatedAt       time.Time `json:"updated_at"`
	UpdatedByUserID int       `json:"updated_by_user_id"`
}

type UpdateSettingRequest struct {
	SettingValue string `json:"setting_value"`
	Description  string `json:"description"`
}

// Setting keys the service reads back by name.
const (
	SettingGreenroomAllowance = "greenroom_default_allowance"
	SettingGreenroomCycle     = "greenroom_active_cycle"
	SettingAutoApproveLimit   = "reimbursement_auto_approve_limit"
	SettingUploadMaxSizeMB    = "upload_max_size_mb"
	SettingOCREngine          = "ocr_engine"
)
