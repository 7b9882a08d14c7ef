package ocr

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Extraction is what an engine pulls off a receipt. Nil pointers mean the
// field was not found; the pipeline leaves those columns untouched.
type Extraction struct {
	Vendor       string     `json:"vendor"`
	Amount       *float64   `json:"amount"`
	TaxAmount    *float64   `json:"tax_amount"`
	PurchaseDate *time.Time `json:"purchase_date"`
	Currency     string     `json:"currency"`
}

// Engine turns a stored receipt file into an Extraction.
type Engine interface {
	Extract(ctx context.Context, data []byte, contentType string) (*Extraction, error)
	Name() string
}

var (
	totalPattern  = regexp.MustCompile(`(?im)^\s*(?:total|amount\s+due|grand\s+total|balance\s+due)\s*[:\-]?\s*(?:USD|EUR|GBP)?\s*[$€£]?\s*([\d,]+\.\d{2})`)
	taxPattern    = regexp.MustCompile(`(?im)^\s*(?:tax|sales\s+tax|vat|gst)\s*(?:\([\d.]+%\))?\s*[:\-]?\s*[$€£]?\s*([\d,]+\.\d{2})`)
	isoDatePat    = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	usDatePat     = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)
	currencyTable = map[string]string{"$": "USD", "€": "EUR", "£": "GBP"}
)

// TextEngine parses plain-text receipts with fixed patterns. It backs
// text/plain uploads and is the deterministic engine used in tests and in
// deployments without a vision API key.
type TextEngine struct{}

func NewTextEngine() *TextEngine {
	return &TextEngine{}
}

func (e *TextEngine) Name() string { return "text" }

func (e *TextEngine) Extract(ctx context.Context, data []byte, contentType string) (*Extraction, error) {
	text := string(data)
	ext := &Extraction{Currency: detectCurrency(text)}

	// Vendor: first non-empty line.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			ext.Vendor = line
			break
		}
	}

	if m := totalPattern.FindStringSubmatch(text); len(m) > 1 {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			ext.Amount = &v
		}
	}
	if m := taxPattern.FindStringSubmatch(text); len(m) > 1 {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			ext.TaxAmount = &v
		}
	}

	if m := isoDatePat.FindStringSubmatch(text); len(m) > 1 {
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
			ext.PurchaseDate = &t
		}
	} else if m := usDatePat.FindStringSubmatch(text); len(m) > 1 {
		if t, err := time.Parse("1/2/2006", m[1]); err == nil {
			ext.PurchaseDate = &t
		}
	}

	return ext, nil
}

func detectCurrency(text string) string {
	for symbol, code := range currencyTable {
		if strings.Contains(text, symbol) {
			return code
		}
	}
	for _, code := range []string{"USD", "EUR", "GBP"} {
		if strings.Contains(text, code) {
			return code
		}
	}
	return ""
}
