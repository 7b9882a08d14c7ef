package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type ReceiptRepository struct {
	DB *pgxpool.Pool
}

func NewReceiptRepository(db *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{DB: db}
}

const receiptColumns = `
	id, production_id, uploader_id, vendor, amount, tax_amount, currency,
	purchase_date, expense_type, storage_key, file_url, original_filename, content_type,
	ocr_status, ocr_error, ocr_attempts, user_edited,
	budget_line_id, shoot_day_id, scene_id, verified, verified_by,
	reimbursement_status, rejection_reason, submitted_at, reviewed_at, reviewed_by, reimbursed_at,
	created_at, updated_at`

func scanReceipt(row pgx.Row) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	err := row.Scan(
		&receipt.ID, &receipt.ProductionID, &receipt.UploaderID, &receipt.Vendor,
		&receipt.Amount, &receipt.TaxAmount, &receipt.Currency,
		&receipt.PurchaseDate, &receipt.ExpenseType, &receipt.StorageKey, &receipt.FileURL,
		&receipt.OriginalFilename, &receipt.ContentType,
		&receipt.OCRStatus, &receipt.OCRError, &receipt.OCRAttempts, &receipt.UserEdited,
		&receipt.BudgetLineID, &receipt.ShootDayID, &receipt.SceneID,
		&receipt.Verified, &receipt.VerifiedBy,
		&receipt.ReimbursementStatus, &receipt.RejectionReason,
		&receipt.SubmittedAt, &receipt.ReviewedAt, &receipt.ReviewedBy, &receipt.ReimbursedAt,
		&receipt.CreatedAt, &receipt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// CreateReceipt inserts a receipt. Uploads arrive with ocr_status pending;
// manual entries arrive with ocr_status succeeded and fields already filled.
func (r *ReceiptRepository) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	query := `
		INSERT INTO receipts (
			production_id, uploader_id, vendor, amount, tax_amount, currency,
			purchase_date, expense_type, storage_key, file_url, original_filename, content_type,
			ocr_status, user_edited, reimbursement_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`
	userEdited := receipt.UserEdited
	if userEdited == nil {
		userEdited = []string{}
	}
	return r.DB.QueryRow(ctx, query,
		receipt.ProductionID, receipt.UploaderID, receipt.Vendor, receipt.Amount,
		receipt.TaxAmount, receipt.Currency, receipt.PurchaseDate, receipt.ExpenseType,
		receipt.StorageKey, receipt.FileURL, receipt.OriginalFilename, receipt.ContentType,
		receipt.OCRStatus, userEdited, receipt.ReimbursementStatus,
	).Scan(&receipt.ID, &receipt.CreatedAt, &receipt.UpdatedAt)
}

// GetReceipt retrieves a receipt by ID
func (r *ReceiptRepository) GetReceipt(ctx context.Context, id int) (*models.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`
	return scanReceipt(r.DB.QueryRow(ctx, query, id))
}

// ListReceipts retrieves receipts for a production, optionally filtered by
// reimbursement status, expense type and uploader. Empty or zero filters match all.
func (r *ReceiptRepository) ListReceipts(ctx context.Context, productionID int, reimbStatus, expenseType string, uploaderID int) ([]*models.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE production_id = $1
		  AND ($2 = '' OR reimbursement_status = $2)
		  AND ($3 = '' OR expense_type = $3)
		  AND ($4 = 0 OR uploader_id = $4)
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, productionID, reimbStatus, expenseType, uploaderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

// ListUnmapped retrieves receipts not yet tied to a budget line
func (r *ReceiptRepository) ListUnmapped(ctx context.Context, productionID int) ([]*models.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE production_id = $1 AND budget_line_id IS NULL
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, productionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

// UpdateFields applies a partial edit, records which fields the user touched
// and optionally moves the reimbursement status in the same statement.
func (r *ReceiptRepository) UpdateFields(ctx context.Context, id int, vendor *string, amount, taxAmount *float64, currency *string, purchaseDate *time.Time, expenseType *string, editedFields []string, reimbStatus string, clearRejection bool) error {
	query := `
		UPDATE receipts
		SET vendor = COALESCE($1, vendor),
		    amount = COALESCE($2, amount),
		    tax_amount = COALESCE($3, tax_amount),
		    currency = COALESCE($4, currency),
		    purchase_date = COALESCE($5, purchase_date),
		    expense_type = COALESCE($6, expense_type),
		    user_edited = ARRAY(SELECT DISTINCT unnest(user_edited || $7::text[])),
		    reimbursement_status = CASE WHEN $8 <> '' THEN $8 ELSE reimbursement_status END,
		    rejection_reason = CASE WHEN $9 THEN '' ELSE rejection_reason END,
		    submitted_at = CASE WHEN $8 = 'pending' THEN CURRENT_TIMESTAMP ELSE submitted_at END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
	`
	edited := editedFields
	if edited == nil {
		edited = []string{}
	}
	_, err := r.DB.Exec(ctx, query,
		vendor, amount, taxAmount, currency, purchaseDate, expenseType,
		edited, reimbStatus, clearRejection, id)
	return err
}

// UpdateMapping ties the receipt to budget line, shoot day and scene
func (r *ReceiptRepository) UpdateMapping(ctx context.Context, id int, budgetLineID, shootDayID, sceneID *int) error {
	query := `
		UPDATE receipts
		SET budget_line_id = $1, shoot_day_id = $2, scene_id = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`
	_, err := r.DB.Exec(ctx, query, budgetLineID, shootDayID, sceneID, id)
	return err
}

// SetVerified marks a receipt checked against the source document
func (r *ReceiptRepository) SetVerified(ctx context.Context, id, verifierID int, verified bool) error {
	query := `
		UPDATE receipts
		SET verified = $1,
		    verified_by = CASE WHEN $1 THEN $2 ELSE NULL END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	_, err := r.DB.Exec(ctx, query, verified, verifierID, id)
	return err
}

// DeleteReceipt removes a receipt row
func (r *ReceiptRepository) DeleteReceipt(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	return err
}

// ClaimPendingOCR atomically flips up to limit pending receipts to processing
// and returns them. SKIP LOCKED keeps concurrent workers off the same rows.
func (r *ReceiptRepository) ClaimPendingOCR(ctx context.Context, limit int) ([]*models.Receipt, error) {
	query := `
		UPDATE receipts
		SET ocr_status = 'processing', ocr_attempts = ocr_attempts + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id IN (
			SELECT id FROM receipts
			WHERE ocr_status = 'pending' AND storage_key <> ''
			ORDER BY created_at ASC
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + receiptColumns
	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

// MarkOCRSucceeded stores extracted fields and completes the OCR run
func (r *ReceiptRepository) MarkOCRSucceeded(ctx context.Context, id int, vendor string, amount, taxAmount *float64, purchaseDate *time.Time, currency string) error {
	query := `
		UPDATE receipts
		SET ocr_status = 'succeeded', ocr_error = '',
		    vendor = $1, amount = $2, tax_amount = $3, purchase_date = $4, currency = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
	`
	_, err := r.DB.Exec(ctx, query, vendor, amount, taxAmount, purchaseDate, currency, id)
	return err
}

// MarkOCRFailed records the failure so the uploader can retry
func (r *ReceiptRepository) MarkOCRFailed(ctx context.Context, id int, errMsg string) error {
	query := `
		UPDATE receipts
		SET ocr_status = 'failed', ocr_error = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	_, err := r.DB.Exec(ctx, query, errMsg, id)
	return err
}

// RetryOCR re-queues a failed extraction. Returns false when the receipt was
// not in the failed state.
func (r *ReceiptRepository) RetryOCR(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE receipts
		SET ocr_status = 'pending', ocr_error = '', updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND ocr_status = 'failed'
	`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetReimbursementStatus moves the workflow state with its bookkeeping
// columns. Which timestamps move depends on the target state.
func (r *ReceiptRepository) SetReimbursementStatus(ctx context.Context, id int, status, reason string, reviewerID *int) error {
	query := `
		UPDATE receipts
		SET reimbursement_status = $1,
		    rejection_reason = $2,
		    submitted_at = CASE WHEN $1 = 'pending' THEN CURRENT_TIMESTAMP ELSE submitted_at END,
		    reviewed_at = CASE WHEN $1 IN ('approved', 'changes_requested', 'rejected') THEN CURRENT_TIMESTAMP ELSE reviewed_at END,
		    reviewed_by = CASE WHEN $1 IN ('approved', 'changes_requested', 'rejected') THEN $3 ELSE reviewed_by END,
		    reimbursed_at = CASE WHEN $1 = 'reimbursed' THEN CURRENT_TIMESTAMP ELSE reimbursed_at END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`
	_, err := r.DB.Exec(ctx, query, status, reason, reviewerID, id)
	return err
}

// ListPendingReimbursements retrieves submitted receipts awaiting review
func (r *ReceiptRepository) ListPendingReimbursements(ctx context.Context, productionID int) ([]*models.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE production_id = $1 AND reimbursement_status = 'pending'
		ORDER BY submitted_at ASC
	`
	rows, err := r.DB.Query(ctx, query, productionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

// ListSubmittableDrafts retrieves draft personal receipts with an amount,
// the set eligible for bulk submission.
func (r *ReceiptRepository) ListSubmittableDrafts(ctx context.Context, productionID, uploaderID int) ([]*models.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE production_id = $1 AND uploader_id = $2
		  AND reimbursement_status = 'draft'
		ORDER BY created_at ASC
	`
	rows, err := r.DB.Query(ctx, query, productionID, uploaderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

// ReimbursementTotals sums approved and reimbursed amounts per uploader for
// one production. Used by the expense report.
func (r *ReceiptRepository) ReimbursementTotals(ctx context.Context, productionID int) (map[int]float64, error) {
	query := `
		SELECT uploader_id, COALESCE(SUM(amount), 0)
		FROM receipts
		WHERE production_id = $1
		  AND reimbursement_status IN ('approved', 'reimbursed')
		GROUP BY uploader_id
	`
	rows, err := r.DB.Query(ctx, query, productionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int]float64)
	for rows.Next() {
		var uploaderID int
		var total float64
		if err := rows.Scan(&uploaderID, &total); err != nil {
			return nil, err
		}
		totals[uploaderID] = total
	}
	return totals, rows.Err()
}
