package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// VisionEngine extracts receipt fields with a multimodal model. PDF uploads
// are rasterized page by page and sent as images alongside the prompt.
type VisionEngine struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewVisionEngine(apiKey, model string, logger *zap.Logger) *VisionEngine {
	return &VisionEngine{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

func (e *VisionEngine) Name() string { return "openai" }

// visionResult mirrors the JSON contract in the prompt.
type visionResult struct {
	Vendor       string  `json:"vendor"`
	TotalAmount  float64 `json:"total_amount"`
	TaxAmount    float64 `json:"tax_amount"`
	PurchaseDate string  `json:"purchase_date"`
	Currency     string  `json:"currency"`
}

func (e *VisionEngine) Extract(ctx context.Context, data []byte, contentType string) (*Extraction, error) {
	if strings.HasPrefix(contentType, "text/") {
		return NewTextEngine().Extract(ctx, data, contentType)
	}

	var images [][]byte
	if contentType == "application/pdf" {
		pages, err := pdfToImages(data, e.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to convert PDF: %w", err)
		}
		if len(pages) == 0 {
			return nil, fmt.Errorf("no pages extracted from PDF")
		}
		// First two pages are enough for a receipt and bound the token cost.
		if len(pages) > 2 {
			pages = pages[:2]
		}
		images = pages
	} else {
		images = [][]byte{data}
	}

	contentParts := []openai.ChatMessagePart{{
		Type: openai.ChatMessagePartTypeText,
		Text: visionPrompt,
	}}
	for _, img := range images {
		contentParts = append(contentParts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    fmt.Sprintf("data:image/jpeg;base64,%s", base64.StdEncoding.EncodeToString(img)),
				Detail: openai.ImageURLDetailHigh,
			},
		})
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		MaxTokens:   1024,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert at reading purchase receipts. Always respond with valid JSON.",
			},
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: contentParts,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		e.logger.Error("vision API call failed", zap.Error(err))
		return nil, fmt.Errorf("vision API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from vision API")
	}

	content := resp.Choices[0].Message.Content
	var result visionResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		e.logger.Error("failed to parse vision response",
			zap.Error(err),
			zap.String("content", content))
		return nil, fmt.Errorf("failed to parse vision response: %w", err)
	}

	ext := &Extraction{
		Vendor:   result.Vendor,
		Currency: result.Currency,
	}
	if result.TotalAmount > 0 {
		ext.Amount = &result.TotalAmount
	}
	if result.TaxAmount > 0 {
		ext.TaxAmount = &result.TaxAmount
	}
	if result.PurchaseDate != "" {
		if t, err := time.Parse("2006-01-02", result.PurchaseDate); err == nil {
			ext.PurchaseDate = &t
		}
	}

	return ext, nil
}

const visionPrompt = `Examine this purchase receipt and extract the fields below.

Return a JSON object with this exact structure:
{
  "vendor": "merchant name as printed",
  "total_amount": number,
  "tax_amount": number,
  "purchase_date": "YYYY-MM-DD",
  "currency": "ISO code, e.g. USD"
}

IMPORTANT:
- total_amount is the final charged amount including tax.
- Use numbers without currency symbols.
- If a field is not visible or unclear, use empty string "" or 0.`
