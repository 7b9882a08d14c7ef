package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"
)

// ExpenseReportData holds all data for a production expense report
type ExpenseReportData struct {
	Production     *models.Production
	Lines          []*models.BudgetLineWithActuals
	Receipts       []*models.Receipt
	TotalEstimated float64
	TotalActual    float64
	VerifiedCount  int
	UnmappedCount  int
}

// MemberStatementData holds reimbursement figures for one crew member
type MemberStatementData struct {
	Member          *models.ProductionMember
	Receipts        []*models.Receipt
	TotalSubmitted  float64
	TotalApproved   float64
	TotalReimbursed float64
	Balance         float64
}

// DailyProductionData holds data for the end-of-day wrap report
type DailyProductionData struct {
	Production *models.Production
	Day        *models.ShootDay
	Takes      []*models.Take
	SceneCount int
	SetupCount int
	PrintCount int
	NGCount    int
	TotalTakes int
}

// ReportService handles report generation
type ReportService struct {
	Productions *repositories.ProductionRepository
	Receipts    *repositories.ReceiptRepository
	Takes       *repositories.TakeRepository
}

// NewReportService creates a new report service
func NewReportService(
	productions *repositories.ProductionRepository,
	receipts *repositories.ReceiptRepository,
	takes *repositories.TakeRepository,
) *ReportService {
	return &ReportService{
		Productions: productions,
		Receipts:    receipts,
		Takes:       takes,
	}
}

// GetExpenseReportData fetches budget standing and receipt detail for a
// production. Managers only.
func (s *ReportService) GetExpenseReportData(ctx context.Context, productionID, userID int) (*ExpenseReportData, error) {
	if err := requireManager(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}

	production, err := s.Productions.GetProduction(ctx, productionID)
	if err != nil {
		return nil, err
	}
	lines, err := s.Productions.ListBudgetLinesWithActuals(ctx, productionID)
	if err != nil {
		return nil, err
	}
	receipts, err := s.Receipts.ListReceipts(ctx, productionID, "", "", 0)
	if err != nil {
		return nil, err
	}

	data := &ExpenseReportData{
		Production: production,
		Lines:      lines,
		Receipts:   receipts,
	}
	for _, line := range lines {
		data.TotalEstimated += line.EstimatedAmount
		data.TotalActual += line.ActualAmount
	}
	for _, receipt := range receipts {
		if receipt.Verified {
			data.VerifiedCount++
		}
		if !receipt.Mapped() {
			data.UnmappedCount++
		}
	}
	return data, nil
}

// GenerateExpensePDF generates the expense report PDF for a production
func (s *ReportService) GenerateExpensePDF(data *ExpenseReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Expense Report", data.Production.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Production Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Production", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Company: %s", data.Production.Company), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", strings.ToUpper(data.Production.Status)), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Receipts: %d (%d verified)", len(data.Receipts), data.VerifiedCount), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Unmapped: %d", data.UnmappedCount), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Budget vs Actuals
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Budget vs Actuals", "1", 1, "L", true, 0, "")

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(20, 7, "Code", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Category", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Estimated", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Actual", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Variance", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Rcpts", "1", 1, "C", true, 0, "")

	// Table rows
	pdf.SetFont("Arial", "", 10)
	for _, line := range data.Lines {
		category := line.Category
		if len(category) > 24 {
			category = category[:21] + "..."
		}
		pdf.CellFormat(20, 6, line.Code, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("$ %.2f", line.EstimatedAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("$ %.2f", line.ActualAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("$ %.2f", line.Variance), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", line.ReceiptCount), "1", 1, "C", false, 0, "")
	}

	// Totals row
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(70, 7, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("$ %.2f", data.TotalEstimated), "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("$ %.2f", data.TotalActual), "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("$ %.2f", data.TotalEstimated-data.TotalActual), "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "", "1", 1, "C", true, 0, "")

	// Standing - highlight if over budget
	remaining := data.TotalEstimated - data.TotalActual
	if remaining < 0 {
		pdf.SetFillColor(255, 200, 200) // Light red for over budget
	} else {
		pdf.SetFillColor(200, 255, 200) // Light green for within budget
	}
	pdf.SetFont("Arial", "B", 14)
	standingText := fmt.Sprintf("Remaining: $ %.2f", remaining)
	if remaining < 0 {
		standingText = fmt.Sprintf("OVER BUDGET: $ %.2f", -remaining)
	}
	pdf.CellFormat(190, 10, standingText, "1", 1, "C", true, 0, "")

	// Receipt detail
	if len(data.Receipts) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Receipts", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(55, 7, "Vendor", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Amount", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Type", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Status", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, r := range data.Receipts {
			vendor := r.Vendor
			if vendor == "" {
				vendor = "(not extracted)"
			}
			if len(vendor) > 25 {
				vendor = vendor[:22] + "..."
			}
			date := "-"
			if r.PurchaseDate != nil {
				date = r.PurchaseDate.Format("02-Jan-2006")
			}
			amount := "-"
			if r.Amount != nil {
				amount = fmt.Sprintf("$ %.2f", *r.Amount)
			}
			pdf.CellFormat(55, 6, vendor, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, date, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, amount, "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, r.ExpenseType, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, r.ReimbursementStatus, "1", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateBudgetWorkbook generates an XLSX workbook with a budget sheet and
// a receipt detail sheet
func (s *ReportService) GenerateBudgetWorkbook(data *ExpenseReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	budgetSheet := "Budget"
	f.SetSheetName(f.GetSheetName(0), budgetSheet)

	headers := []string{"Code", "Category", "Description", "Estimated", "Actual", "Variance", "Receipts"}
	for i, h := range headers {
		f.SetCellValue(budgetSheet, fmt.Sprintf("%c1", 'A'+i), h)
	}
	row := 2
	for _, line := range data.Lines {
		f.SetCellValue(budgetSheet, fmt.Sprintf("A%d", row), line.Code)
		f.SetCellValue(budgetSheet, fmt.Sprintf("B%d", row), line.Category)
		f.SetCellValue(budgetSheet, fmt.Sprintf("C%d", row), line.Description)
		f.SetCellValue(budgetSheet, fmt.Sprintf("D%d", row), line.EstimatedAmount)
		f.SetCellValue(budgetSheet, fmt.Sprintf("E%d", row), line.ActualAmount)
		f.SetCellValue(budgetSheet, fmt.Sprintf("F%d", row), line.Variance)
		f.SetCellValue(budgetSheet, fmt.Sprintf("G%d", row), line.ReceiptCount)
		row++
	}
	f.SetCellValue(budgetSheet, fmt.Sprintf("C%d", row), "Total")
	f.SetCellValue(budgetSheet, fmt.Sprintf("D%d", row), data.TotalEstimated)
	f.SetCellValue(budgetSheet, fmt.Sprintf("E%d", row), data.TotalActual)
	f.SetCellValue(budgetSheet, fmt.Sprintf("F%d", row), data.TotalEstimated-data.TotalActual)

	receiptSheet := "Receipts"
	if _, err := f.NewSheet(receiptSheet); err != nil {
		return nil, err
	}
	receiptHeaders := []string{"Vendor", "Amount", "Tax", "Currency", "Date", "Type", "Status", "Verified"}
	for i, h := range receiptHeaders {
		f.SetCellValue(receiptSheet, fmt.Sprintf("%c1", 'A'+i), h)
	}
	row = 2
	for _, r := range data.Receipts {
		f.SetCellValue(receiptSheet, fmt.Sprintf("A%d", row), r.Vendor)
		if r.Amount != nil {
			f.SetCellValue(receiptSheet, fmt.Sprintf("B%d", row), *r.Amount)
		}
		if r.TaxAmount != nil {
			f.SetCellValue(receiptSheet, fmt.Sprintf("C%d", row), *r.TaxAmount)
		}
		f.SetCellValue(receiptSheet, fmt.Sprintf("D%d", row), r.Currency)
		if r.PurchaseDate != nil {
			f.SetCellValue(receiptSheet, fmt.Sprintf("E%d", row), r.PurchaseDate.Format("2006-01-02"))
		}
		f.SetCellValue(receiptSheet, fmt.Sprintf("F%d", row), r.ExpenseType)
		f.SetCellValue(receiptSheet, fmt.Sprintf("G%d", row), r.ReimbursementStatus)
		f.SetCellValue(receiptSheet, fmt.Sprintf("H%d", row), r.Verified)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetAllMemberStatementData fetches reimbursement statements for every
// member of a production. Managers only. Filter: "owed" keeps members with
// an unpaid approved balance, "settled" the rest.
func (s *ReportService) GetAllMemberStatementData(ctx context.Context, productionID, userID int, filter string) ([]*MemberStatementData, error) {
	if err := requireManager(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}

	members, err := s.Productions.ListMembers(ctx, productionID)
	if err != nil {
		return nil, err
	}
	receipts, err := s.Receipts.ListReceipts(ctx, productionID, "", models.ExpenseTypePersonal, 0)
	if err != nil {
		return nil, err
	}

	byUploader := make(map[int][]*models.Receipt)
	for _, r := range receipts {
		byUploader[r.UploaderID] = append(byUploader[r.UploaderID], r)
	}

	var statements []*MemberStatementData
	for _, member := range members {
		data := &MemberStatementData{
			Member:   member,
			Receipts: byUploader[member.UserID],
		}
		for _, r := range data.Receipts {
			if r.Amount == nil {
				continue
			}
			switch r.ReimbursementStatus {
			case models.ReimbStatusPending:
				data.TotalSubmitted += *r.Amount
			case models.ReimbStatusApproved:
				data.TotalApproved += *r.Amount
			case models.ReimbStatusReimbursed:
				data.TotalReimbursed += *r.Amount
			}
		}
		data.Balance = data.TotalApproved

		switch filter {
		case "owed":
			if data.Balance > 0 {
				statements = append(statements, data)
			}
		case "settled":
			if data.Balance <= 0 {
				statements = append(statements, data)
			}
		default:
			statements = append(statements, data)
		}
	}

	return statements, nil
}

// GetMemberStatement returns one member's statement along with the
// production, for the single-statement download.
func (s *ReportService) GetMemberStatement(ctx context.Context, productionID, memberID, userID int) (*models.Production, *MemberStatementData, error) {
	production, err := s.Productions.GetProduction(ctx, productionID)
	if err != nil {
		return nil, nil, errors.New("production not found")
	}
	statements, err := s.GetAllMemberStatementData(ctx, productionID, userID, "")
	if err != nil {
		return nil, nil, err
	}
	for _, statement := range statements {
		if statement.Member.UserID == memberID {
			return production, statement, nil
		}
	}
	return nil, nil, errors.New("member not found")
}

// GenerateMemberStatementPDF generates a reimbursement statement PDF for a
// single crew member
func (s *ReportService) GenerateMemberStatementPDF(production *models.Production, data *MemberStatementData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Reimbursement Statement", production.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Member Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Crew Member", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", data.Member.UserName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Email: %s", data.Member.UserEmail), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Role: %s", data.Member.Role), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Receipts: %d", len(data.Receipts)), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Receipt Detail
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Personal Expenses", "1", 1, "L", true, 0, "")

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(60, 7, "Vendor", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Status", "1", 1, "C", true, 0, "")

	// Table rows
	pdf.SetFont("Arial", "", 10)
	for _, r := range data.Receipts {
		vendor := r.Vendor
		if vendor == "" {
			vendor = "(not extracted)"
		}
		if len(vendor) > 28 {
			vendor = vendor[:25] + "..."
		}
		date := "-"
		if r.PurchaseDate != nil {
			date = r.PurchaseDate.Format("02-Jan-2006")
		}
		amount := "-"
		if r.Amount != nil {
			amount = fmt.Sprintf("$ %.2f", *r.Amount)
		}
		pdf.CellFormat(60, 6, vendor, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, amount, "1", 0, "R", false, 0, "")
		pdf.CellFormat(55, 6, r.ReimbursementStatus, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Financial Summary
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Submitted: $ %.2f", data.TotalSubmitted), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Approved: $ %.2f", data.TotalApproved), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Reimbursed: $ %.2f", data.TotalReimbursed), "1", 1, "C", false, 0, "")

	// Balance - highlight if owed
	if data.Balance > 0 {
		pdf.SetFillColor(255, 200, 200) // Light red for owed
	} else {
		pdf.SetFillColor(200, 255, 200) // Light green for settled
	}
	pdf.SetFont("Arial", "B", 14)
	balanceText := fmt.Sprintf("Owed: $ %.2f", data.Balance)
	if data.Balance <= 0 {
		balanceText = "SETTLED"
	}
	pdf.CellFormat(190, 10, balanceText, "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateBulkStatementPDFs generates statement PDFs for all members in parallel
func (s *ReportService) GenerateBulkStatementPDFs(ctx context.Context, productionID, userID int, filter string) (map[string][]byte, error) {
	statements, err := s.GetAllMemberStatementData(ctx, productionID, userID, filter)
	if err != nil {
		return nil, err
	}
	production, err := s.Productions.GetProduction(ctx, productionID)
	if err != nil {
		return nil, err
	}

	type pdfResult struct {
		userID int
		name   string
		data   []byte
		err    error
	}

	results := make(chan pdfResult, len(statements))
	jobs := make(chan *MemberStatementData, len(statements))

	// Start 5 workers for PDF generation
	var wg sync.WaitGroup
	numWorkers := 5
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for st := range jobs {
				pdfData, err := s.GenerateMemberStatementPDF(production, st)
				results <- pdfResult{
					userID: st.Member.UserID,
					name:   st.Member.UserName,
					data:   pdfData,
					err:    err,
				}
			}
		}()
	}

	// Send jobs
	for _, st := range statements {
		jobs <- st
	}
	close(jobs)

	// Wait and close results
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect PDFs
	pdfs := make(map[string][]byte)
	for r := range results {
		if r.err == nil && r.data != nil {
			name := strings.ReplaceAll(r.name, " ", "_")
			filename := fmt.Sprintf("%d_%s", r.userID, name)
			pdfs[filename] = r.data
		}
	}

	return pdfs, nil
}

// CreateStatementZip creates a ZIP file containing all member statement PDFs
func (s *ReportService) CreateStatementZip(pdfs map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for filename, pdfData := range pdfs {
		cleanName := fmt.Sprintf("statement_%s.pdf", filename)
		fw, err := zw.Create(cleanName)
		if err != nil {
			continue
		}
		fw.Write(pdfData)
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateReimbursementCSV generates a CSV summary of per-member
// reimbursement standing for the payout run
func (s *ReportService) GenerateReimbursementCSV(ctx context.Context, productionID, userID int, filter string) ([]byte, error) {
	statements, err := s.GetAllMemberStatementData(ctx, productionID, userID, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Header
	w.Write([]string{
		"#", "Name", "Email", "Role",
		"Receipts", "Submitted", "Approved", "Reimbursed", "Balance", "Status",
	})

	// Data rows
	for i, st := range statements {
		status := "SETTLED"
		if st.Balance > 0 {
			status = "OWED"
		}
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			st.Member.UserName,
			st.Member.UserEmail,
			st.Member.Role,
			fmt.Sprintf("%d", len(st.Receipts)),
			fmt.Sprintf("%.2f", st.TotalSubmitted),
			fmt.Sprintf("%.2f", st.TotalApproved),
			fmt.Sprintf("%.2f", st.TotalReimbursed),
			fmt.Sprintf("%.2f", st.Balance),
			status,
		})
	}

	w.Flush()
	return buf.Bytes(), nil
}

// GetDailyProductionData fetches takes and coverage figures for one shoot day
func (s *ReportService) GetDailyProductionData(ctx context.Context, productionID, dayID, userID int) (*DailyProductionData, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}

	production, err := s.Productions.GetProduction(ctx, productionID)
	if err != nil {
		return nil, err
	}
	days, err := s.Productions.ListShootDays(ctx, productionID)
	if err != nil {
		return nil, err
	}
	var day *models.ShootDay
	for _, d := range days {
		if d.ID == dayID {
			day = d
			break
		}
	}
	if day == nil {
		return nil, errors.New("shoot day not found")
	}

	takes, err := s.Takes.ListTakes(ctx, productionID, "", dayID)
	if err != nil {
		return nil, err
	}

	scenes := make(map[string]bool)
	setups := make(map[string]bool)
	var printCount, ngCount int
	for _, t := range takes {
		scenes[t.SceneNumber] = true
		if t.Setup != "" {
			setups[t.SceneNumber+"/"+t.Setup] = true
		}
		switch t.Status {
		case models.TakeStatusPrint, models.TakeStatusCircled:
			printCount++
		case models.TakeStatusNG, models.TakeStatusFalseStart:
			ngCount++
		}
	}

	return &DailyProductionData{
		Production: production,
		Day:        day,
		Takes:      takes,
		SceneCount: len(scenes),
		SetupCount: len(setups),
		PrintCount: printCount,
		NGCount:    ngCount,
		TotalTakes: len(takes),
	}, nil
}

// GenerateDailyProductionPDF generates the end-of-day wrap report
func (s *ReportService) GenerateDailyProductionPDF(data *DailyProductionData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for more columns
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	dayDate := "TBD"
	if data.Day.ShootDate != nil {
		dayDate = data.Day.ShootDate.Format("02-Jan-2006 (Monday)")
	}

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(277, 12, fmt.Sprintf("%s - Daily Production Report", data.Production.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(277, 8, fmt.Sprintf("Day %d - %s", data.Day.DayNumber, dayDate), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if data.Day.Location != "" {
		pdf.CellFormat(277, 6, fmt.Sprintf("Location: %s", data.Day.Location), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Summary Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(277, 8, "Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(55, 8, fmt.Sprintf("Scenes: %d", data.SceneCount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 8, fmt.Sprintf("Setups: %d", data.SetupCount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 8, fmt.Sprintf("Takes: %d", data.TotalTakes), "1", 0, "C", false, 0, "")
	pdf.CellFormat(56, 8, fmt.Sprintf("Prints: %d", data.PrintCount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(56, 8, fmt.Sprintf("NG: %d", data.NGCount), "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Takes Table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(277, 8, "Takes", "1", 1, "L", true, 0, "")

	// Table header
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Scene", "1", 0, "C", true, 0, "")
	pdf.CellFormat(18, 7, "Take", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Cam", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Setup", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 7, "Timecode", "1", 0, "C", true, 0, "")
	pdf.CellFormat(27, 7, "Logged", "1", 0, "C", true, 0, "")
	pdf.CellFormat(90, 7, "Notes", "1", 1, "C", true, 0, "")

	// Table rows
	pdf.SetFont("Arial", "", 9)
	for i, t := range data.Takes {
		// Alternate row colors
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(245, 245, 245)
		}

		status := strings.ToUpper(strings.ReplaceAll(t.Status, "_", " "))
		notes := t.Notes
		if len(notes) > 48 {
			notes = notes[:45] + "..."
		}

		pdf.CellFormat(12, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 6, t.SceneNumber, "1", 0, "C", true, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%d", t.TakeNumber), "1", 0, "C", true, 0, "")
		pdf.CellFormat(28, 6, status, "1", 0, "C", true, 0, "")
		pdf.CellFormat(20, 6, t.Camera, "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 6, t.Setup, "1", 0, "C", true, 0, "")
		pdf.CellFormat(32, 6, t.Timecode, "1", 0, "C", true, 0, "")
		pdf.CellFormat(27, 6, timeutil.ToLocal(t.CreatedAt).Format("03:04 PM"), "1", 0, "C", true, 0, "")
		pdf.CellFormat(90, 6, notes, "1", 1, "L", true, 0, "")
	}

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateDailyProductionCSV generates a CSV file for one shoot day
func (s *ReportService) GenerateDailyProductionCSV(ctx context.Context, productionID, dayID, userID int) ([]byte, error) {
	data, err := s.GetDailyProductionData(ctx, productionID, dayID, userID)
	if err != nil {
		return nil, err
	}

	dayDate := "TBD"
	if data.Day.ShootDate != nil {
		dayDate = data.Day.ShootDate.Format("02-Jan-2006")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Header info
	w.Write([]string{"Daily Production Report", data.Production.Title})
	w.Write([]string{"Day", fmt.Sprintf("%d", data.Day.DayNumber), dayDate})
	w.Write([]string{""})
	w.Write([]string{"Scenes", fmt.Sprintf("%d", data.SceneCount)})
	w.Write([]string{"Setups", fmt.Sprintf("%d", data.SetupCount)})
	w.Write([]string{"Takes", fmt.Sprintf("%d", data.TotalTakes)})
	w.Write([]string{"Prints", fmt.Sprintf("%d", data.PrintCount)})
	w.Write([]string{"NG", fmt.Sprintf("%d", data.NGCount)})
	w.Write([]string{""})

	// Takes header
	w.Write([]string{"#", "Scene", "Take", "Status", "Camera", "Setup", "Timecode", "Logged", "Notes"})

	// Takes data
	for i, t := range data.Takes {
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			t.SceneNumber,
			fmt.Sprintf("%d", t.TakeNumber),
			t.Status,
			t.Camera,
			t.Setup,
			t.Timecode,
			timeutil.ToLocal(t.CreatedAt).Format("03:04 PM"),
			t.Notes,
		})
	}

	w.Flush()
	return buf.Bytes(), nil
}
