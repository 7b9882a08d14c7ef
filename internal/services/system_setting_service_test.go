package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

func TestValidateSettingValue(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		expectErr bool
	}{
		{name: "allowance accepts integer", key: models.SettingGreenroomAllowance, value: "10"},
		{name: "allowance accepts zero", key: models.SettingGreenroomAllowance, value: "0"},
		{name: "allowance rejects negative", key: models.SettingGreenroomAllowance, value: "-1", expectErr: true},
		{name: "allowance rejects text", key: models.SettingGreenroomAllowance, value: "ten", expectErr: true},
		{name: "allowance rejects decimal", key: models.SettingGreenroomAllowance, value: "2.5", expectErr: true},
		{name: "upload cap accepts integer", key: models.SettingUploadMaxSizeMB, value: "25"},
		{name: "upload cap rejects negative", key: models.SettingUploadMaxSizeMB, value: "-5", expectErr: true},
		{name: "auto approve accepts decimal", key: models.SettingAutoApproveLimit, value: "49.99"},
		{name: "auto approve accepts zero", key: models.SettingAutoApproveLimit, value: "0"},
		{name: "auto approve rejects negative", key: models.SettingAutoApproveLimit, value: "-0.01", expectErr: true},
		{name: "auto approve rejects text", key: models.SettingAutoApproveLimit, value: "none", expectErr: true},
		{name: "ocr engine accepts text", key: models.SettingOCREngine, value: "text"},
		{name: "ocr engine accepts openai", key: models.SettingOCREngine, value: "openai"},
		{name: "ocr engine rejects unknown", key: models.SettingOCREngine, value: "tesseract", expectErr: true},
		{name: "cycle is stored as-is", key: models.SettingGreenroomCycle, value: "2026-08"},
		{name: "unknown key is stored as-is", key: "branding_color", value: "#ff0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSettingValue(tt.key, tt.value)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVendorLabel(t *testing.T) {
	assert.Equal(t, "Harbor Grip & Electric", vendorLabel(&models.Receipt{Vendor: "Harbor Grip & Electric"}))
	assert.Equal(t, "an unnamed vendor", vendorLabel(&models.Receipt{}))
}
