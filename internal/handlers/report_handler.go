package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

func attachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(data)
}

// GetExpensePDF handles GET /productions/{id}/reports/expenses/pdf
func (h *ReportHandler) GetExpensePDF(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	data, err := h.Service.GetExpenseReportData(ctx, productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	pdfData, err := h.Service.GenerateExpensePDF(data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("expense_report_%d_%s.pdf", productionID, timeutil.Now().Format("2006-01-02"))
	attachment(w, "application/pdf", filename, pdfData)
}

// GetBudgetWorkbook handles GET /productions/{id}/reports/expenses/workbook
// and returns an Excel file with Budget and Receipts sheets.
func (h *ReportHandler) GetBudgetWorkbook(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	data, err := h.Service.GetExpenseReportData(ctx, productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	workbook, err := h.Service.GenerateBudgetWorkbook(data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate workbook")
		return
	}

	filename := fmt.Sprintf("budget_%d_%s.xlsx", productionID, timeutil.Now().Format("2006-01-02"))
	attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, workbook)
}

// GetMemberStatementPDF handles GET /productions/{id}/reports/statements/{userID}/pdf
func (h *ReportHandler) GetMemberStatementPDF(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	memberID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	production, statement, err := h.Service.GetMemberStatement(ctx, productionID, memberID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	pdfData, err := h.Service.GenerateMemberStatementPDF(production, statement)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("statement_%d_%s.pdf", memberID, timeutil.Now().Format("2006-01-02"))
	attachment(w, "application/pdf", filename, pdfData)
}

// GetStatementsZip handles GET /productions/{id}/reports/statements/zip
// Query params: filter=all|owed|settled
// Returns a ZIP with one statement PDF per crew member.
func (h *ReportHandler) GetStatementsZip(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := r.URL.Query().Get("filter")

	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	pdfs, err := h.Service.GenerateBulkStatementPDFs(ctx, productionID, userID, filter)
	if err != nil {
		serviceError(w, err)
		return
	}
	if len(pdfs) == 0 {
		respondError(w, http.StatusNotFound, "no members match the filter")
		return
	}

	zipData, err := h.Service.CreateStatementZip(pdfs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create ZIP")
		return
	}

	filename := fmt.Sprintf("statements_%d_%s.zip", productionID, timeutil.Now().Format("2006-01-02"))
	attachment(w, "application/zip", filename, zipData)
}

// GetReimbursementCSV handles GET /productions/{id}/reports/statements/csv
// Query params: filter=all|owed|settled
func (h *ReportHandler) GetReimbursementCSV(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	csvData, err := h.Service.GenerateReimbursementCSV(ctx, productionID, userID, r.URL.Query().Get("filter"))
	if err != nil {
		serviceError(w, err)
		return
	}

	filename := fmt.Sprintf("reimbursements_%d_%s.csv", productionID, timeutil.Now().Format("2006-01-02"))
	attachment(w, "text/csv", filename, csvData)
}

// GetDailyPDF handles GET /productions/{id}/reports/days/{dayID}/pdf
// Returns the daily production report for one shoot day.
func (h *ReportHandler) GetDailyPDF(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dayID, err := pathID(r, "dayID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	data, err := h.Service.GetDailyProductionData(ctx, productionID, dayID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	pdfData, err := h.Service.GenerateDailyProductionPDF(data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("daily_report_day%d_%s.pdf", data.Day.DayNumber, timeutil.Now().Format("2006-01-02"))
	attachment(w, "application/pdf", filename, pdfData)
}

// GetDailyCSV handles GET /productions/{id}/reports/days/{dayID}/csv
func (h *ReportHandler) GetDailyCSV(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dayID, err := pathID(r, "dayID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	csvData, err := h.Service.GenerateDailyProductionCSV(ctx, productionID, dayID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	filename := fmt.Sprintf("daily_report_%d_%s.csv", dayID, timeutil.Now().Format("2006-01-02"))
	attachment(w, "text/csv", filename, csvData)
}
