package ocr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

func TestMergeExtractionFillsEmptyFields(t *testing.T) {
	receipt := &models.Receipt{
		ID:       1,
		Vendor:   "",
		Currency: "",
	}
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	ext := &Extraction{
		Vendor:       "Harbor Grip & Electric",
		Amount:       f64(82.13),
		TaxAmount:    f64(7.13),
		PurchaseDate: &date,
		Currency:     "USD",
	}

	vendor, amount, tax, purchaseDate, currency := MergeExtraction(receipt, ext)

	assert.Equal(t, "Harbor Grip & Electric", vendor)
	require.NotNil(t, amount)
	assert.InDelta(t, 82.13, *amount, 0.001)
	require.NotNil(t, tax)
	assert.InDelta(t, 7.13, *tax, 0.001)
	require.NotNil(t, purchaseDate)
	assert.True(t, purchaseDate.Equal(date))
	assert.Equal(t, "USD", currency)
}

func TestMergeExtractionKeepsUserEditedFields(t *testing.T) {
	existing := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	extracted := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	receipt := &models.Receipt{
		ID:           2,
		Vendor:       "Hand Entered Vendor",
		Amount:       f64(100.00),
		TaxAmount:    f64(9.00),
		PurchaseDate: &existing,
		Currency:     "EUR",
		UserEdited:   []string{"vendor", "amount", "tax_amount", "purchase_date", "currency"},
	}
	ext := &Extraction{
		Vendor:       "OCR Vendor",
		Amount:       f64(50.00),
		TaxAmount:    f64(4.00),
		PurchaseDate: &extracted,
		Currency:     "USD",
	}

	vendor, amount, tax, purchaseDate, currency := MergeExtraction(receipt, ext)

	assert.Equal(t, "Hand Entered Vendor", vendor)
	assert.InDelta(t, 100.00, *amount, 0.001)
	assert.InDelta(t, 9.00, *tax, 0.001)
	assert.True(t, purchaseDate.Equal(existing))
	assert.Equal(t, "EUR", currency)
}

func TestMergeExtractionPartialLock(t *testing.T) {
	receipt := &models.Receipt{
		ID:         3,
		Vendor:     "Hand Entered Vendor",
		Amount:     f64(100.00),
		UserEdited: []string{"vendor"},
	}
	ext := &Extraction{
		Vendor: "OCR Vendor",
		Amount: f64(55.25),
	}

	vendor, amount, _, _, _ := MergeExtraction(receipt, ext)

	// Only vendor is locked; the extracted amount replaces the stored one.
	assert.Equal(t, "Hand Entered Vendor", vendor)
	assert.InDelta(t, 55.25, *amount, 0.001)
}

func TestMergeExtractionIgnoresMissingEngineValues(t *testing.T) {
	existing := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	receipt := &models.Receipt{
		ID:           4,
		Vendor:       "Existing Vendor",
		Amount:       f64(20.00),
		PurchaseDate: &existing,
		Currency:     "USD",
	}
	ext := &Extraction{} // engine found nothing

	vendor, amount, tax, purchaseDate, currency := MergeExtraction(receipt, ext)

	assert.Equal(t, "Existing Vendor", vendor)
	assert.InDelta(t, 20.00, *amount, 0.001)
	assert.Nil(t, tax)
	assert.True(t, purchaseDate.Equal(existing))
	assert.Equal(t, "USD", currency)
}
