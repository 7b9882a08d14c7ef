package handlers

import (
	"net/http"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

func uploadLimitBytes(r *http.Request, settings *services.SystemSettingService) int64 {
	return settings.UploadMaxBytes(r.Context())
}

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

func isImageContentType(contentType string) bool {
	return imageContentTypes[contentType]
}

// receiptContentTypes additionally allows PDF scans and plain-text receipts
// from email forwards.
var receiptContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
	"text/plain":      true,
}

func isReceiptContentType(contentType string) bool {
	return receiptContentTypes[contentType]
}
