package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/storage"
)

var ErrReceiptNotFound = errors.New("receipt not found")

type ReceiptService struct {
	Repo          *repositories.ReceiptRepository
	Productions   *repositories.ProductionRepository
	Settings      *repositories.SystemSettingRepository
	Store         storage.Store
	Notifications *NotificationService
	Logger        *zap.Logger
}

func NewReceiptService(
	repo *repositories.ReceiptRepository,
	productions *repositories.ProductionRepository,
	settings *repositories.SystemSettingRepository,
	store storage.Store,
	notifications *NotificationService,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		Repo:          repo,
		Productions:   productions,
		Settings:      settings,
		Store:         store,
		Notifications: notifications,
		Logger:        logger,
	}
}

// getScoped loads a receipt and hides receipts from other productions
func (s *ReceiptService) getScoped(ctx context.Context, productionID, receiptID int) (*models.Receipt, error) {
	receipt, err := s.Repo.GetReceipt(ctx, receiptID)
	if err != nil {
		return nil, ErrReceiptNotFound
	}
	if receipt.ProductionID != productionID {
		return nil, ErrReceiptNotFound
	}
	return receipt, nil
}

// UploadReceipt stores the file and enqueues it for OCR. Uploads within a
// batch arrive as separate calls, one awaited after the other.
func (s *ReceiptService) UploadReceipt(ctx context.Context, productionID, uploaderID int, filename, contentType, expenseType string, file io.Reader) (*models.Receipt, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, uploaderID); err != nil {
		return nil, err
	}
	if expenseType == "" {
		expenseType = models.ExpenseTypePersonal
	}
	switch expenseType {
	case models.ExpenseTypePersonal, models.ExpenseTypeCompanyCard:
	default:
		return nil, errors.New("invalid expense type")
	}

	key := storage.MakeKey("receipts", filename)
	url, err := s.Store.Put(ctx, key, file, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store receipt file: %w", err)
	}

	reimbStatus := models.ReimbStatusDraft
	if expenseType == models.ExpenseTypeCompanyCard {
		reimbStatus = models.ReimbStatusNotApplicable
	}
	receipt := &models.Receipt{
		ProductionID:        productionID,
		UploaderID:          uploaderID,
		Currency:            "USD",
		ExpenseType:         expenseType,
		StorageKey:          key,
		FileURL:             url,
		OriginalFilename:    filename,
		ContentType:         contentType,
		OCRStatus:           models.OCRStatusPending,
		ReimbursementStatus: reimbStatus,
	}
	if err := s.Repo.CreateReceipt(ctx, receipt); err != nil {
		if delErr := s.Store.Delete(ctx, key); delErr != nil {
			s.Logger.Warn("failed to remove orphaned receipt file",
				zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}
	return receipt, nil
}

// CreateManualReceipt records a receipt typed in by hand. There is no file
// and nothing for OCR to do, so it starts in succeeded with every supplied
// field marked user-owned.
func (s *ReceiptService) CreateManualReceipt(ctx context.Context, productionID, uploaderID int, req *models.CreateReceiptRequest) (*models.Receipt, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, uploaderID); err != nil {
		return nil, err
	}
	if req.Vendor == "" {
		return nil, errors.New("vendor is required")
	}
	if req.Amount == nil {
		return nil, errors.New("amount is required")
	}
	expenseType := req.ExpenseType
	if expenseType == "" {
		expenseType = models.ExpenseTypePersonal
	}
	switch expenseType {
	case models.ExpenseTypePersonal, models.ExpenseTypeCompanyCard:
	default:
		return nil, errors.New("invalid expense type")
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	receipt := &models.Receipt{
		ProductionID:        productionID,
		UploaderID:          uploaderID,
		Vendor:              req.Vendor,
		Amount:              req.Amount,
		TaxAmount:           req.TaxAmount,
		Currency:            currency,
		ExpenseType:         expenseType,
		OCRStatus:           models.OCRStatusSucceeded,
		UserEdited:          []string{"vendor", "amount", "currency"},
		ReimbursementStatus: models.ReimbStatusDraft,
	}
	if expenseType == models.ExpenseTypeCompanyCard {
		receipt.ReimbursementStatus = models.ReimbStatusNotApplicable
	}
	if req.TaxAmount != nil {
		receipt.UserEdited = append(receipt.UserEdited, "tax_amount")
	}
	if req.PurchaseDate != "" {
		date, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return nil, errors.New("purchase date must be YYYY-MM-DD")
		}
		receipt.PurchaseDate = &date
		receipt.UserEdited = append(receipt.UserEdited, "purchase_date")
	}
	if err := s.Repo.CreateReceipt(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetReceipt retrieves one receipt in the production
func (s *ReceiptService) GetReceipt(ctx context.Context, productionID, userID, receiptID int) (*models.Receipt, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	return s.getScoped(ctx, productionID, receiptID)
}

// ListReceipts retrieves receipts with optional status/type filters; mine
// narrows to the caller's own uploads.
func (s *ReceiptService) ListReceipts(ctx context.Context, productionID, userID int, reimbStatus, expenseType string, mine bool) ([]*models.Receipt, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	uploaderID := 0
	if mine {
		uploaderID = userID
	}
	return s.Repo.ListReceipts(ctx, productionID, reimbStatus, expenseType, uploaderID)
}

// ListUnmapped retrieves receipts not yet tied to a budget line
func (s *ReceiptService) ListUnmapped(ctx context.Context, productionID, userID int) ([]*models.Receipt, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListUnmapped(ctx, productionID)
}

// UpdateReceipt edits receipt fields. Edited fields become user-owned so a
// later OCR pass cannot overwrite them. Editing a receipt that was sent
// back (changes requested or rejected) returns it to draft with the stored
// reason intact; saving with resubmit re-enters pending and clears it.
// Switching the expense type to company card parks reimbursement at
// not applicable; switching back restarts at draft.
// editTransition computes the reimbursement status after an edit.
// Company card receipts sit in not_applicable; switching back to personal
// re-enters draft. Editing a changes_requested or rejected receipt returns
// it to draft (the stored reason stays until resubmit clears it), and
// resubmit pushes a draft with an amount back to pending.
func editTransition(receipt *models.Receipt, expenseType string, newAmount *float64, resubmit bool) (string, bool, error) {
	status := receipt.ReimbursementStatus
	if expenseType == models.ExpenseTypeCompanyCard {
		if resubmit {
			return "", false, errors.New("company card receipts are not reimbursable")
		}
		return models.ReimbStatusNotApplicable, false, nil
	}
	if receipt.ExpenseType == models.ExpenseTypeCompanyCard {
		status = models.ReimbStatusDraft
	}
	if status == models.ReimbStatusChangesRequested || status == models.ReimbStatusRejected {
		status = models.ReimbStatusDraft
	}
	if resubmit {
		if status != models.ReimbStatusDraft {
			return "", false, errors.New("only draft receipts can be submitted")
		}
		amount := receipt.Amount
		if newAmount != nil {
			amount = newAmount
		}
		if amount == nil {
			return "", false, errors.New("amount is required to submit")
		}
		return models.ReimbStatusPending, true, nil
	}
	return status, false, nil
}

func (s *ReceiptService) UpdateReceipt(ctx context.Context, productionID, userID, receiptID int, req *models.UpdateReceiptRequest) (*models.Receipt, error) {
	role, err := requireMember(ctx, s.Productions, productionID, userID)
	if err != nil {
		return nil, err
	}
	receipt, err := s.getScoped(ctx, productionID, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.UploaderID != userID && role != models.MemberRoleOwner && role != models.MemberRoleManager {
		return nil, ErrForbidden
	}

	expenseType := receipt.ExpenseType
	if req.ExpenseType != nil {
		switch *req.ExpenseType {
		case models.ExpenseTypePersonal, models.ExpenseTypeCompanyCard:
		default:
			return nil, errors.New("invalid expense type")
		}
		expenseType = *req.ExpenseType
	}

	var purchaseDate *time.Time
	if req.PurchaseDate != nil {
		date, err := time.Parse("2006-01-02", *req.PurchaseDate)
		if err != nil {
			return nil, errors.New("purchase date must be YYYY-MM-DD")
		}
		purchaseDate = &date
	}

	var editedFields []string
	if req.Vendor != nil {
		editedFields = append(editedFields, "vendor")
	}
	if req.Amount != nil {
		editedFields = append(editedFields, "amount")
	}
	if req.TaxAmount != nil {
		editedFields = append(editedFields, "tax_amount")
	}
	if purchaseDate != nil {
		editedFields = append(editedFields, "purchase_date")
	}
	if req.Currency != nil {
		editedFields = append(editedFields, "currency")
	}

	status, clearRejection, err := editTransition(receipt, expenseType, req.Amount, req.Resubmit)
	if err != nil {
		return nil, err
	}

	var expensePtr *string
	if req.ExpenseType != nil {
		expensePtr = &expenseType
	}
	err = s.Repo.UpdateFields(ctx, receiptID,
		req.Vendor, req.Amount, req.TaxAmount, req.Currency, purchaseDate,
		expensePtr, editedFields, status, clearRejection)
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if status == models.ReimbStatusPending {
		return s.maybeAutoApprove(ctx, updated)
	}
	return updated, nil
}

// MapReceipt ties the receipt to a budget line, shoot day and scene; nil
// clears the mapping.
func (s *ReceiptService) MapReceipt(ctx context.Context, productionID, userID, receiptID int, req *models.MapReceiptRequest) (*models.Receipt, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	receipt, err := s.getScoped(ctx, productionID, receiptID)
	if err != nil {
		return nil, err
	}
	if req.BudgetLineID != nil {
		line, err := s.Productions.GetBudgetLine(ctx, *req.BudgetLineID)
		if err != nil || line.ProductionID != productionID {
			return nil, errors.New("budget line not found")
		}
	}
	if err := s.Repo.UpdateMapping(ctx, receipt.ID, req.BudgetLineID, req.ShootDayID, req.SceneID); err != nil {
		return nil, err
	}
	return s.Repo.GetReceipt(ctx, receipt.ID)
}

// SetVerified flips the manager verification flag. Only verified receipts
// count toward budget actuals.
func (s *ReceiptService) SetVerified(ctx context.Context, productionID, userID, receiptID int, verified bool) (*models.Receipt, error) {
	if err := requireManager(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	receipt, err := s.getScoped(ctx, productionID, receiptID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetVerified(ctx, receipt.ID, userID, verified); err != nil {
		return nil, err
	}
	return s.Repo.GetReceipt(ctx, receipt.ID)
}

// DeleteReceipt removes the receipt and its stored file
func (s *ReceiptService) DeleteReceipt(ctx context.Context, productionID, userID, receiptID int) error {
	role, err := requireMember(ctx, s.Productions, productionID, userID)
	if err != nil {
		return err
	}
	receipt, err := s.getScoped(ctx, productionID, receiptID)
	if err != nil {
		return err
	}
	if receipt.UploaderID != userID && role != models.MemberRoleOwner && role != models.MemberRoleManager {
		return ErrForbidden
	}
	if err := s.Repo.DeleteReceipt(ctx, receipt.ID); err != nil {
		return err
	}
	if receipt.StorageKey != "" {
		if err := s.Store.Delete(ctx, receipt.StorageKey); err != nil {
			s.Logger.Warn("failed to delete receipt file",
				zap.String("key", receipt.StorageKey), zap.Error(err))
		}
	}
	return nil
}

// RetryOCR requeues a failed extraction
func (s *ReceiptService) RetryOCR(ctx context.Context, productionID, userID, receiptID int) (*models.Receipt, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	receipt, err := s.getScoped(ctx, productionID, receiptID)
	if err != nil {
		return nil, err
	}
	retried, err := s.Repo.RetryOCR(ctx, receipt.ID)
	if err != nil {
		return nil, err
	}
	if !retried {
		return nil, errors.New("only failed extractions can be retried")
	}
	return s.Repo.GetReceipt(ctx, receipt.ID)
}

// Submit sends a draft personal receipt into the review queue
func (s *ReceiptService) Submit(ctx context.Context, productionID, userID, receiptID int) (*models.Receipt, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	receipt, err := s.getScoped(ctx, productionID, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.UploaderID != userID {
		return nil, ErrForbidden
	}
	if err := s.submitOne(ctx, receipt); err != nil {
		return nil, err
	}
	updated, err := s.Repo.GetReceipt(ctx, receipt.ID)
	if err != nil {
		return nil, err
	}
	return s.maybeAutoApprove(ctx, updated)
}

// submitGuard reports why a receipt cannot enter the review queue, nil when
// it is eligible.
func submitGuard(receipt *models.Receipt) error {
	if receipt.Amount == nil {
		return errors.New("amount is required to submit")
	}
	if receipt.ExpenseType != models.ExpenseTypePersonal {
		return errors.New("company card receipts are not reimbursable")
	}
	if receipt.ReimbursementStatus != models.ReimbStatusDraft {
		return errors.New("only draft receipts can be submitted")
	}
	return nil
}

// submitOne applies the submission guards and moves the receipt to pending
func (s *ReceiptService) submitOne(ctx context.Context, receipt *models.Receipt) error {
	if err := submitGuard(receipt); err != nil {
		return err
	}
	return s.Repo.SetReimbursementStatus(ctx, receipt.ID, models.ReimbStatusPending, "", nil)
}

// SubmitAll submits every eligible draft one at a time. Failures are
// per-item: earlier submissions stay submitted and the result reports what
// went wrong for the rest.
func (s *ReceiptService) SubmitAll(ctx context.Context, productionID, userID int) (*models.SubmitAllResult, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	drafts, err := s.Repo.ListSubmittableDrafts(ctx, productionID, userID)
	if err != nil {
		return nil, err
	}
	result := &models.SubmitAllResult{Errors: map[int]string{}}
	for _, receipt := range drafts {
		if err := s.submitOne(ctx, receipt); err != nil {
			result.Failed++
			result.Errors[receipt.ID] = err.Error()
			continue
		}
		result.Submitted++
		if updated, err := s.Repo.GetReceipt(ctx, receipt.ID); err == nil {
			if _, err := s.maybeAutoApprove(ctx, updated); err != nil {
				s.Logger.Warn("auto-approve failed",
					zap.Int("receipt_id", receipt.ID), zap.Error(err))
			}
		}
	}
	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result, nil
}

// maybeAutoApprove approves small submissions without review when the
// auto-approve limit setting is positive
func (s *ReceiptService) maybeAutoApprove(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error) {
	if receipt.ReimbursementStatus != models.ReimbStatusPending || receipt.Amount == nil {
		return receipt, nil
	}
	limit := s.Settings.GetFloat(ctx, models.SettingAutoApproveLimit, 0)
	if limit <= 0 || *receipt.Amount > limit {
		return receipt, nil
	}
	if err := s.Repo.SetReimbursementStatus(ctx, receipt.ID, models.ReimbStatusApproved, "", nil); err != nil {
		return nil, err
	}
	s.Notifications.Notify(ctx, receipt.UploaderID, models.NotifyKindReceiptReview,
		"Reimbursement approved",
		fmt.Sprintf("Your receipt from %s was auto-approved.", vendorLabel(receipt)),
		"receipt", receipt.ID)
	return s.Repo.GetReceipt(ctx, receipt.ID)
}

// ListReviewQueue retrieves pending submissions for managers, oldest first
func (s *ReceiptService) ListReviewQueue(ctx context.Context, productionID, userID int) ([]*models.Receipt, error) {
	if err := requireManager(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListPendingReimbursements(ctx, productionID)
}

// Approve accepts a pending submission
func (s *ReceiptService) Approve(ctx context.Context, productionID, userID, receiptID int) (*models.Receipt, error) {
	return s.review(ctx, productionID, userID, receiptID, models.ReimbStatusApproved, "")
}

// RequestChanges sends a pending submission back to the uploader; a reason
// is required and stored for the edit dialog.
func (s *ReceiptService) RequestChanges(ctx context.Context, productionID, userID, receiptID int, reason string) (*models.Receipt, error) {
	if reason == "" {
		return nil, errors.New("a reason is required when requesting changes")
	}
	return s.review(ctx, productionID, userID, receiptID, models.ReimbStatusChangesRequested, reason)
}

// Reject declines a pending submission; a reason is required and stored.
func (s *ReceiptService) Reject(ctx context.Context, productionID, userID, receiptID int, reason string) (*models.Receipt, error) {
	if reason == "" {
		return nil, errors.New("a reason is required when rejecting")
	}
	return s.review(ctx, productionID, userID, receiptID, models.ReimbStatusRejected, reason)
}

func (s *ReceiptService) review(ctx context.Context, productionID, userID, receiptID int, status, reason string) (*models.Receipt, error) {
	if err := requireManager(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	receipt, err := s.getScoped(ctx, productionID, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.ReimbursementStatus != models.ReimbStatusPending {
		return nil, errors.New("only pending receipts can be reviewed")
	}
	if err := s.Repo.SetReimbursementStatus(ctx, receipt.ID, status, reason, &userID); err != nil {
		return nil, err
	}

	title := "Reimbursement approved"
	body := fmt.Sprintf("Your receipt from %s was approved.", vendorLabel(receipt))
	switch status {
	case models.ReimbStatusChangesRequested:
		title = "Changes requested"
		body = fmt.Sprintf("Your receipt from %s needs changes: %s", vendorLabel(receipt), reason)
	case models.ReimbStatusRejected:
		title = "Reimbursement rejected"
		body = fmt.Sprintf("Your receipt from %s was rejected: %s", vendorLabel(receipt), reason)
	}
	s.Notifications.Notify(ctx, receipt.UploaderID, models.NotifyKindReceiptReview, title, body, "receipt", receipt.ID)

	return s.Repo.GetReceipt(ctx, receipt.ID)
}

// MarkReimbursed records payout of an approved receipt
func (s *ReceiptService) MarkReimbursed(ctx context.Context, productionID, userID, receiptID int) (*models.Receipt, error) {
	if err := requireManager(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	receipt, err := s.getScoped(ctx, productionID, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.ReimbursementStatus != models.ReimbStatusApproved {
		return nil, errors.New("only approved receipts can be marked reimbursed")
	}
	if err := s.Repo.SetReimbursementStatus(ctx, receipt.ID, models.ReimbStatusReimbursed, "", &userID); err != nil {
		return nil, err
	}
	s.Notifications.Notify(ctx, receipt.UploaderID, models.NotifyKindReceiptReview,
		"Reimbursement paid",
		fmt.Sprintf("Your receipt from %s was reimbursed.", vendorLabel(receipt)),
		"receipt", receipt.ID)
	return s.Repo.GetReceipt(ctx, receipt.ID)
}

// ReimbursementTotals sums approved and reimbursed amounts per uploader
func (s *ReceiptService) ReimbursementTotals(ctx context.Context, productionID, userID int) (map[int]float64, error) {
	if err := requireManager(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ReimbursementTotals(ctx, productionID)
}

func vendorLabel(receipt *models.Receipt) string {
	if receipt.Vendor != "" {
		return receipt.Vendor
	}
	return "an unnamed vendor"
}
