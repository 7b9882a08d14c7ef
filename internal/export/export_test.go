package export

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

func TestColumns(t *testing.T) {
	tests := []struct {
		name       string
		exportType string
		expectErr  bool
		first      string
		count      int
	}{
		{name: "receipts", exportType: TypeReceipts, first: "id", count: 10},
		{name: "takes", exportType: TypeTakes, first: "id", count: 10},
		{name: "greenroom", exportType: TypeGreenroom, first: "project_id", count: 4},
		{name: "unknown type errors", exportType: "invoices", expectErr: true},
		{name: "empty type errors", exportType: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns, err := Columns(tt.exportType)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, columns, tt.count)
			assert.Equal(t, tt.first, columns[0])
		})
	}
}

func TestCSVHeaderAndRows(t *testing.T) {
	rows := []map[string]interface{}{
		{
			"project_id": 7,
			"title":      "Night Shoot",
			"status":     "approved",
			"votes":      12,
		},
		{
			"project_id": 9,
			"title":      `Comma, "Quote"`,
			"status":     "submitted",
			"votes":      0,
		},
	}

	data, err := CSV(TypeGreenroom, rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "project_id,title,status,votes", lines[0])
	assert.Equal(t, `7,"Night Shoot","approved",12`, lines[1])
	// Embedded commas and quotes survive because fields are JSON strings.
	assert.Equal(t, `9,"Comma, \"Quote\"","submitted",0`, lines[2])
}

func TestCSVMissingFieldIsNull(t *testing.T) {
	rows := []map[string]interface{}{
		{"project_id": 1, "title": "Untallied"},
	}

	data, err := CSV(TypeGreenroom, rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `1,"Untallied",null,null`, lines[1])
}

func TestCSVEmptyRows(t *testing.T) {
	data, err := CSV(TypeReceipts, nil)
	require.NoError(t, err)

	// Header only.
	assert.Equal(t, strings.Join(mustColumns(t, TypeReceipts), ",")+"\n", string(data))
}

func TestCSVUnknownType(t *testing.T) {
	_, err := CSV("crew", nil)
	assert.Error(t, err)
}

func TestJSONRestrictsToColumns(t *testing.T) {
	rows := []map[string]interface{}{
		{
			"project_id": 3,
			"title":      "Docu Pilot",
			"status":     "winner",
			"votes":      41,
			"secret":     "should not appear",
		},
	}

	data, err := JSON(TypeGreenroom, rows)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)

	assert.Equal(t, "Docu Pilot", decoded[0]["title"])
	assert.Equal(t, float64(41), decoded[0]["votes"])
	assert.NotContains(t, decoded[0], "secret")
}

func TestJSONEmptyRows(t *testing.T) {
	data, err := JSON(TypeTakes, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFilename(t *testing.T) {
	name := Filename(TypeReceipts, "csv")
	assert.Regexp(t, regexp.MustCompile(`^receipts_\d{4}-\d{2}-\d{2}\.csv$`), name)

	name = Filename(TypeTakes, "json")
	assert.Regexp(t, regexp.MustCompile(`^takes_\d{4}-\d{2}-\d{2}\.json$`), name)
}

func TestReceiptRows(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	amount := 82.13
	receipts := []*models.Receipt{
		{
			ID:                  11,
			Vendor:              "Harbor Grip & Electric",
			Amount:              &amount,
			Currency:            "USD",
			PurchaseDate:        &date,
			ExpenseType:         models.ExpenseTypePersonal,
			ReimbursementStatus: models.ReimbStatusDraft,
			Verified:            true,
			CreatedAt:           date,
		},
		{
			ID:        12,
			Vendor:    "Pending OCR",
			CreatedAt: date,
		},
	}

	rows := ReceiptRows(receipts)
	require.Len(t, rows, 2)

	assert.Equal(t, 11, rows[0]["id"])
	assert.Equal(t, 82.13, rows[0]["amount"])
	assert.Equal(t, "2026-03-14", rows[0]["purchase_date"])
	assert.Equal(t, true, rows[0]["verified"])

	// Unset pointers come through as nil, not zero values.
	assert.Nil(t, rows[1]["amount"])
	assert.Nil(t, rows[1]["purchase_date"])
}

func TestTakeRows(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	takes := []*models.Take{
		{
			ID:          5,
			SceneNumber: "24A",
			TakeNumber:  3,
			Status:      models.TakeStatusCircled,
			Camera:      "A",
			CreatedAt:   now,
		},
	}

	rows := TakeRows(takes)
	require.Len(t, rows, 1)
	assert.Equal(t, "24A", rows[0]["scene_number"])
	assert.Equal(t, 3, rows[0]["take_number"])
	assert.Equal(t, models.TakeStatusCircled, rows[0]["status"])
	assert.Equal(t, now.Format(time.RFC3339), rows[0]["created_at"])
}

func TestGreenroomRows(t *testing.T) {
	tallies := []models.ProjectTally{
		{ProjectID: 1, Title: "Night Shoot", Status: "approved", Votes: 12},
	}

	rows := GreenroomRows(tallies)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0]["project_id"])
	assert.Equal(t, 12, rows[0]["votes"])
}

func mustColumns(t *testing.T, exportType string) []string {
	t.Helper()
	columns, err := Columns(exportType)
	require.NoError(t, err)
	return columns
}
