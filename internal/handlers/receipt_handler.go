package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

type ReceiptHandler struct {
	Service  *services.ReceiptService
	Settings *services.SystemSettingService
}

func NewReceiptHandler(s *services.ReceiptService, settings *services.SystemSettingService) *ReceiptHandler {
	return &ReceiptHandler{Service: s, Settings: settings}
}

// receiptScope pulls the caller and the production/receipt ids out of the
// request. Every receipt route nests under a production.
func receiptScope(r *http.Request) (userID, productionID, receiptID int, err error) {
	userID, _ = middleware.GetUserIDFromContext(r.Context())
	productionID, err = pathID(r, "id")
	if err != nil {
		return 0, 0, 0, err
	}
	receiptID, err = pathID(r, "receiptID")
	if err != nil {
		return 0, 0, 0, err
	}
	return userID, productionID, receiptID, nil
}

// Upload stores a receipt scan and enqueues it for OCR extraction
func (h *ReceiptHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	maxBytes := uploadLimitBytes(r, h.Settings)
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		respondError(w, http.StatusBadRequest, "file exceeds the upload size limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isReceiptContentType(contentType) {
		respondError(w, http.StatusBadRequest, "receipt must be a JPEG, PNG, WebP or PDF file")
		return
	}

	expenseType := r.FormValue("expense_type")
	receipt, err := h.Service.UploadReceipt(r.Context(), productionID, userID, header.Filename, contentType, expenseType, file)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, receipt)
}

// CreateManual records a receipt typed in by hand, no file attached
func (h *ReceiptHandler) CreateManual(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.CreateReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.Service.CreateManualReceipt(r.Context(), productionID, userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, receipt)
}

// List returns production receipts with optional reimbursement_status,
// expense_type and mine filters.
func (h *ReceiptHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	receipts, err := h.Service.ListReceipts(r.Context(), productionID, userID,
		q.Get("reimbursement_status"), q.Get("expense_type"), q.Get("mine") == "true")
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipts)
}

// ListUnmapped returns verified receipts not yet assigned to a budget line
func (h *ReceiptHandler) ListUnmapped(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	receipts, err := h.Service.ListUnmapped(r.Context(), productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipts)
}

func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, productionID, receiptID, err := receiptScope(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	receipt, err := h.Service.GetReceipt(r.Context(), productionID, userID, receiptID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

// Update edits extracted fields; edited fields become user-owned so a later
// OCR pass will not overwrite them.
func (h *ReceiptHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, productionID, receiptID, err := receiptScope(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.Service.UpdateReceipt(r.Context(), productionID, userID, receiptID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

// Map assigns the receipt to a budget line, shoot day and/or scene
func (h *ReceiptHandler) Map(w http.ResponseWriter, r *http.Request) {
	userID, productionID, receiptID, err := receiptScope(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.MapReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.Service.MapReceipt(r.Context(), productionID, userID, receiptID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

// Verify toggles the verified flag that gates budget actuals
func (h *ReceiptHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, productionID, receiptID, err := receiptScope(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Verified bool `json:"verified"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.Service.SetVerified(r.Context(), productionID, userID, receiptID, req.Verified)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

func (h *ReceiptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, productionID, receiptID, err := receiptScope(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteReceipt(r.Context(), productionID, userID, receiptID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "receipt deleted"})
}

// RetryOCR re-queues a failed extraction
func (h *ReceiptHandler) RetryOCR(w http.ResponseWriter, r *http.Request) {
	userID, productionID, receiptID, err := receiptScope(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	receipt, err := h.Service.RetryOCR(r.Context(), productionID, userID, receiptID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

// Submit sends a personal expense receipt into the reimbursement queue
func (h *ReceiptHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, productionID, receiptID, err := receiptScope(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	receipt, err := h.Service.Submit(r.Context(), productionID, userID, receiptID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

// SubmitAll submits every draft personal receipt the caller has, reporting
// per-receipt failures without aborting the batch.
func (h *ReceiptHandler) SubmitAll(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.SubmitAll(r.Context(), productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ReviewQueue lists submitted receipts awaiting a manager decision
func (h *ReceiptHandler) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	receipts, err := h.Service.ListReviewQueue(r.Context(), productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipts)
}

func (h *ReceiptHandler) Approve(w http.ResponseWriter, r *http.Request) {
	userID, productionID, receiptID, err := receiptScope(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	receipt, err := h.Service.Approve(r.Context(), productionID, userID, receiptID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

func (h *ReceiptHandler) RequestChanges(w http.ResponseWriter, r *http.Request) {
	h.reviewWithReason(w, r, h.Service.RequestChanges)
}

func (h *ReceiptHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.reviewWithReason(w, r, h.Service.Reject)
}

func (h *ReceiptHandler) reviewWithReason(w http.ResponseWriter, r *http.Request,
	decide func(ctx context.Context, productionID, userID, receiptID int, reason string) (*models.Receipt, error)) {
	userID, productionID, receiptID, err := receiptScope(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.ReviewReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := decide(r.Context(), productionID, userID, receiptID, req.Reason)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

func (h *ReceiptHandler) MarkReimbursed(w http.ResponseWriter, r *http.Request) {
	userID, productionID, receiptID, err := receiptScope(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	receipt, err := h.Service.MarkReimbursed(r.Context(), productionID, userID, receiptID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

// ReimbursementTotals sums approved-and-paid amounts per crew member
func (h *ReceiptHandler) ReimbursementTotals(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	totals, err := h.Service.ReimbursementTotals(r.Context(), productionID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, totals)
}
