package ocr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReceipt = `Harbor Grip & Electric
1200 Flower St, Los Angeles CA

2 x Apple Box        $30.00
C-Stand rental       $45.00

Subtotal:            $75.00
Sales Tax (9.5%):    $7.13
Total:               $82.13

Date: 2026-03-14
Thank you for your business!
`

func TestTextEngineExtract(t *testing.T) {
	engine := NewTextEngine()

	ext, err := engine.Extract(context.Background(), []byte(sampleReceipt), "text/plain")
	require.NoError(t, err)

	assert.Equal(t, "Harbor Grip & Electric", ext.Vendor)

	require.NotNil(t, ext.Amount)
	assert.InDelta(t, 82.13, *ext.Amount, 0.001)

	require.NotNil(t, ext.TaxAmount)
	assert.InDelta(t, 7.13, *ext.TaxAmount, 0.001)

	require.NotNil(t, ext.PurchaseDate)
	assert.Equal(t, "2026-03-14", ext.PurchaseDate.Format("2006-01-02"))

	assert.Equal(t, "USD", ext.Currency)
}

func TestTextEngineExtractVariants(t *testing.T) {
	engine := NewTextEngine()

	tests := []struct {
		name           string
		text           string
		expectedVendor string
		expectAmount   *float64
		expectTax      bool
		expectedDate   string
		expectedCurr   string
	}{
		{
			name:           "amount due with thousands separator",
			text:           "Panavision Hollywood\nAmount Due: $1,249.99\n",
			expectedVendor: "Panavision Hollywood",
			expectAmount:   f64(1249.99),
			expectedCurr:   "USD",
		},
		{
			name:           "grand total euro",
			text:           "Studio Babelsberg\nGrand Total: €310.50\n",
			expectedVendor: "Studio Babelsberg",
			expectAmount:   f64(310.50),
			expectedCurr:   "EUR",
		},
		{
			name:           "vat line pound",
			text:           "Pinewood Stores\nVAT: £12.00\nTotal: £72.00\n",
			expectedVendor: "Pinewood Stores",
			expectAmount:   f64(72.00),
			expectTax:      true,
			expectedCurr:   "GBP",
		},
		{
			name:           "us date format",
			text:           "Quixote Studios\nTotal: $50.00\nDate: 3/4/2026\n",
			expectedVendor: "Quixote Studios",
			expectAmount:   f64(50.00),
			expectedDate:   "2026-03-04",
			expectedCurr:   "USD",
		},
		{
			name:           "iso date wins over us date",
			text:           "Catering Co\nDate: 2026-05-01 printed 6/1/2026\n",
			expectedVendor: "Catering Co",
			expectedDate:   "2026-05-01",
		},
		{
			name:           "currency code without symbol",
			text:           "Vendor Ltd\nTotal: USD 20.00\n",
			expectedVendor: "Vendor Ltd",
			expectedCurr:   "USD",
		},
		{
			name:           "leading blank lines skipped for vendor",
			text:           "\n\n  Mole-Richardson Co  \nTotal: $9.99\n",
			expectedVendor: "Mole-Richardson Co",
			expectAmount:   f64(9.99),
			expectedCurr:   "USD",
		},
		{
			name: "empty input yields empty extraction",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := engine.Extract(context.Background(), []byte(tt.text), "text/plain")
			require.NoError(t, err)

			assert.Equal(t, tt.expectedVendor, ext.Vendor)

			if tt.expectAmount != nil {
				require.NotNil(t, ext.Amount)
				assert.InDelta(t, *tt.expectAmount, *ext.Amount, 0.001)
			}
			if tt.expectTax {
				assert.NotNil(t, ext.TaxAmount)
			}
			if tt.expectedDate != "" {
				require.NotNil(t, ext.PurchaseDate)
				assert.Equal(t, tt.expectedDate, ext.PurchaseDate.Format("2006-01-02"))
			}
			assert.Equal(t, tt.expectedCurr, ext.Currency)
		})
	}
}

func TestTextEngineIgnoresSubtotal(t *testing.T) {
	engine := NewTextEngine()

	ext, err := engine.Extract(context.Background(), []byte("Vendor\nSubtotal: $10.00\n"), "text/plain")
	require.NoError(t, err)

	// Subtotal is not a total line; amount stays unset.
	assert.Nil(t, ext.Amount)
}

func f64(v float64) *float64 { return &v }
