package ocr

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// pdfToImages rasterizes each PDF page to JPEG for the vision call.
func pdfToImages(data []byte, logger *zap.Logger) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var images [][]byte
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		img, err := doc.Image(pageNum)
		if err != nil {
			logger.Warn("failed to rasterize page", zap.Int("page", pageNum), zap.Error(err))
			continue
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			logger.Warn("failed to encode page", zap.Int("page", pageNum), zap.Error(err))
			continue
		}
		images = append(images, buf.Bytes())
	}

	return images, nil
}
