package models

import "time"

type Receipt struct {
	ID               int        `json:"id" db:"id"`
	ProductionID     int        `json:"production_id" db:"production_id"`
	UploaderID       int        `json:"uploader_id" db:"uploader_id"`
	Vendor           string     `json:"vendor" db:"vendor"`
	Amount           *float64   `json:"amount" db:"amount"` // nil until OCR or manual entry fills it
	TaxAmount        *float64   `json:"tax_amount,omitempty" db:"tax_amount"`
	Currency         string     `json:"currency" db:"currency"`
	PurchaseDate     *time.Time `json:"purchase_date,omitempty" db:"purchase_date"`
	ExpenseType      string     `json:"expense_type" db:"expense_type"` // personal or company_card
	StorageKey       string     `json:"-" db:"storage_key"`
	FileURL          string     `json:"file_url" db:"file_url"`
	OriginalFilename string     `json:"original_filename" db:"original_filename"`
	ContentType      string     `json:"content_type" db:"content_type"`

	OCRStatus   string   `json:"ocr_status" db:"ocr_status"` // pending, processing, succeeded, failed
	OCRError    string   `json:"ocr_error,omitempty" db:"ocr_error"`
	OCRAttempts int      `json:"ocr_attempts" db:"ocr_attempts"`
	UserEdited  []string `json:"-" db:"user_edited"` // fields the uploader set by hand; OCR must not overwrite

	BudgetLineID *int `json:"budget_line_id,omitempty" db:"budget_line_id"`
	ShootDayID   *int `json:"shoot_day_id,omitempty" db:"shoot_day_id"`
	SceneID      *int `json:"scene_id,omitempty" db:"scene_id"`
	Verified     bool `json:"verified" db:"verified"`
	VerifiedBy   *int `json:"verified_by,omitempty" db:"verified_by"`

	ReimbursementStatus string     `json:"reimbursement_status" db:"reimbursement_status"`
	RejectionReason     string     `json:"rejection_reason,omitempty" db:"rejection_reason"`
	SubmittedAt         *time.Time `json:"submitted_at,omitempty" db:"submitted_at"`
	ReviewedAt          *time.Time `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewedBy          *int       `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReimbursedAt        *time.Time `json:"reimbursed_at,omitempty" db:"reimbursed_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Mapped reports whether the receipt is tied to a budget line. Mapping is
// derived, not stored.
func (r *Receipt) Mapped() bool {
	return r.BudgetLineID != nil
}

const (
	ExpenseTypePersonal    = "personal"
	ExpenseTypeCompanyCard = "company_card"
)

// OCR pipeline states
const (
	OCRStatusPending    = "pending"
	OCRStatusProcessing = "processing"
	OCRStatusSucceeded  = "succeeded"
	OCRStatusFailed     = "failed"
)

// Reimbursement workflow states
const (
	ReimbStatusNotApplicable    = "not_applicable"
	ReimbStatusDraft            = "draft"
	ReimbStatusPending          = "pending"
	ReimbStatusApproved         = "approved"
	ReimbStatusChangesRequested = "changes_requested"
	ReimbStatusRejected         = "rejected"
	ReimbStatusReimbursed       = "reimbursed"
)

// CreateReceiptRequest is the manual-entry path; uploads go through multipart.
type CreateReceiptRequest struct {
	Vendor       string   `json:"vendor"`
	Amount       *float64 `json:"amount"`
	TaxAmount    *float64 `json:"tax_amount"`
	Currency     string   `json:"currency"`
	PurchaseDate string   `json:"purchase_date"` // YYYY-MM-DD
	ExpenseType  string   `json:"expense_type"`
}

// UpdateReceiptRequest edits receipt fields. Resubmit re-enters the
// reimbursement queue when the receipt was sent back for changes or rejected.
type UpdateReceiptRequest struct {
	Vendor       *string  `json:"vendor"`
	Amount       *float64 `json:"amount"`
	TaxAmount    *float64 `json:"tax_amount"`
	Currency     *string  `json:"currency"`
	PurchaseDate *string  `json:"purchase_date"`
	ExpenseType  *string  `json:"expense_type"`
	Resubmit     bool     `json:"resubmit"`
}

type MapReceiptRequest struct {
	BudgetLineID *int `json:"budget_line_id"`
	ShootDayID   *int `json:"shoot_day_id"`
	SceneID      *int `json:"scene_id"`
}

// ReviewReceiptRequest carries the manager decision payload
type ReviewReceiptRequest struct {
	Reason string `json:"reason"`
}

// SubmitAllResult reports the per-receipt outcome of a bulk submission
type SubmitAllResult struct {
	Submitted int            `json:"submitted"`
	Failed    int            `json:"failed"`
	Errors    map[int]string `json:"errors,omitempty"` // receipt id -> error
}
