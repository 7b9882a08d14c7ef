package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsImageContentType(t *testing.T) {
	tests := []struct {
		contentType string
		expected    bool
	}{
		{contentType: "image/jpeg", expected: true},
		{contentType: "image/jpg", expected: true},
		{contentType: "image/png", expected: true},
		{contentType: "image/webp", expected: true},
		{contentType: "image/gif", expected: false},
		{contentType: "application/pdf", expected: false},
		{contentType: "text/html", expected: false},
		{contentType: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.expected, isImageContentType(tt.contentType))
		})
	}
}

func TestIsReceiptContentType(t *testing.T) {
	// Receipts accept every image type plus PDF scans and text forwards.
	assert.True(t, isReceiptContentType("application/pdf"))
	assert.True(t, isReceiptContentType("image/jpeg"))
	assert.True(t, isReceiptContentType("text/plain"))
	assert.False(t, isReceiptContentType("text/html"))
	assert.False(t, isReceiptContentType("application/zip"))
}
