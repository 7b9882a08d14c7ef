package services

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

func testProduction() *models.Production {
	return &models.Production{
		ID:      1,
		Title:   "Second Watch",
		Company: "Harbor Light Pictures",
		Status:  models.ProductionStatusShooting,
		OwnerID: 5,
	}
}

func testExpenseData() *ExpenseReportData {
	amount := 82.13
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	return &ExpenseReportData{
		Production: testProduction(),
		Lines: []*models.BudgetLineWithActuals{
			{
				BudgetLine: models.BudgetLine{
					ID:              1,
					Code:            "2100",
					Category:        "Camera",
					Description:     "Camera rentals",
					EstimatedAmount: 5000,
				},
				ActualAmount: 82.13,
				Variance:     4917.87,
				ReceiptCount: 1,
			},
		},
		Receipts: []*models.Receipt{
			{
				ID:           11,
				Vendor:       "Harbor Grip & Electric",
				Amount:       &amount,
				Currency:     "USD",
				PurchaseDate: &date,
				ExpenseType:  models.ExpenseTypePersonal,
				Verified:     true,
				CreatedAt:    date,
			},
		},
		TotalEstimated: 5000,
		TotalActual:    82.13,
		VerifiedCount:  1,
		UnmappedCount:  0,
	}
}

func TestGenerateExpensePDF(t *testing.T) {
	service := &ReportService{}

	data, err := service.GenerateExpensePDF(testExpenseData())
	require.NoError(t, err)

	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "expected a PDF header")
}

func TestGenerateExpensePDFEmptyReport(t *testing.T) {
	service := &ReportService{}

	data, err := service.GenerateExpensePDF(&ExpenseReportData{
		Production: testProduction(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateBudgetWorkbook(t *testing.T) {
	service := &ReportService{}

	data, err := service.GenerateBudgetWorkbook(testExpenseData())
	require.NoError(t, err)

	// XLSX files are zip archives.
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.NotEmpty(t, reader.File)
}

func TestGenerateMemberStatementPDF(t *testing.T) {
	service := &ReportService{}

	amount := 120.00
	statement := &MemberStatementData{
		Member: &models.ProductionMember{
			ID:       2,
			UserID:   9,
			Role:     models.MemberRoleCrew,
			UserName: "Alex Reyes",
		},
		Receipts: []*models.Receipt{
			{
				ID:                  21,
				Vendor:              "Gas Station",
				Amount:              &amount,
				Currency:            "USD",
				ExpenseType:         models.ExpenseTypePersonal,
				ReimbursementStatus: models.ReimbStatusApproved,
			},
		},
		TotalSubmitted: 120.00,
		TotalApproved:  120.00,
		Balance:        120.00,
	}

	data, err := service.GenerateMemberStatementPDF(testProduction(), statement)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateDailyProductionPDF(t *testing.T) {
	service := &ReportService{}

	date := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	data, err := service.GenerateDailyProductionPDF(&DailyProductionData{
		Production: testProduction(),
		Day: &models.ShootDay{
			ID:        3,
			DayNumber: 12,
			ShootDate: &date,
			Location:  "Stage 4",
		},
		Takes: []*models.Take{
			{ID: 1, SceneNumber: "24A", TakeNumber: 1, Status: models.TakeStatusOK, Camera: "A"},
			{ID: 2, SceneNumber: "24A", TakeNumber: 2, Status: models.TakeStatusPrint, Camera: "A"},
		},
		SceneCount: 1,
		SetupCount: 1,
		PrintCount: 1,
		NGCount:    0,
		TotalTakes: 2,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestCreateStatementZip(t *testing.T) {
	service := &ReportService{}

	pdfs := map[string][]byte{
		"alex_reyes":  []byte("%PDF-1.4 fake"),
		"dana_scully": []byte("%PDF-1.4 fake"),
	}

	data, err := service.CreateStatementZip(pdfs)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)

	names := []string{reader.File[0].Name, reader.File[1].Name}
	assert.Contains(t, names, "statement_alex_reyes.pdf")
	assert.Contains(t, names, "statement_dana_scully.pdf")
}

func TestCreateStatementZipEmpty(t *testing.T) {
	service := &ReportService{}

	data, err := service.CreateStatementZip(map[string][]byte{})
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Empty(t, reader.File)
}
