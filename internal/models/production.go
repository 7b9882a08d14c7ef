package models

import "time"

type Production struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Company   string    `json:"company" db:"company"`
	Status    string    `json:"status" db:"status"` // prep, shooting, wrapped
	OwnerID   int       `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

const (
	ProductionStatusPrep     = "prep"
	ProductionStatusShooting = "shooting"
	ProductionStatusWrapped  = "wrapped"
)

type ProductionMember struct {
	ID           int       `json:"id" db:"id"`
	ProductionID int       `json:"production_id" db:"production_id"`
	UserID       int       `json:"user_id" db:"user_id"`
	Role         string    `json:"role" db:"role"` // owner, manager, crew, scripty
	UserName     string    `json:"user_name,omitempty" db:"-"`
	UserEmail    string    `json:"user_email,omitempty" db:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

const (
	MemberRoleOwner   = "owner"
	MemberRoleManager = "manager"
	MemberRoleCrew    = "crew"
	MemberRoleScripty = "scripty"
)

type ShootDay struct {
	ID           int        `json:"id" db:"id"`
	ProductionID int        `json:"production_id" db:"production_id"`
	DayNumber    int        `json:"day_number" db:"day_number"`
	ShootDate    *time.Time `json:"shoot_date,omitempty" db:"shoot_date"`
	Location     string     `json:"location" db:"location"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

type Scene struct {
	ID           int       `json:"id" db:"id"`
	ProductionID int       `json:"production_id" db:"production_id"`
	SceneNumber  string    `json:"scene_number" db:"scene_number"`
	Description  string    `json:"description" db:"description"`
	PageEighths  int       `json:"page_eighths" db:"page_eighths"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type BudgetLine struct {
	ID              int       `json:"id" db:"id"`
	ProductionID    int       `json:"production_id" db:"production_id"`
	Code            string    `json:"code" db:"code"`
	Category        string    `json:"category" db:"category"`
	Description     string    `json:"description" db:"description"`
	EstimatedAmount float64   `json:"estimated_amount" db:"estimated_amount"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// BudgetLineWithActuals carries read-time spend figures; actuals are summed
// from mapped verified receipts on every request, never stored.
type BudgetLineWithActuals struct {
	BudgetLine
	ActualAmount float64 `json:"actual_amount"`
	Variance     float64 `json:"variance"`
	ReceiptCount int     `json:"receipt_count"`
}

type CreateProductionRequest struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

type UpdateProductionRequest struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Status  string `json:"status"`
}

type AddMemberRequest struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

type CreateShootDayRequest struct {
	DayNumber int    `json:"day_number"`
	ShootDate string `json:"shoot_date"` // YYYY-MM-DD, optional
	Location  string `json:"location"`
}

type UpdateShootDayRequest struct {
	DayNumber int    `json:"day_number"`
	ShootDate string `json:"shoot_date"`
	Location  string `json:"location"`
}

type CreateSceneRequest struct {
	SceneNumber string `json:"scene_number"`
	Description string `json:"description"`
	PageEighths int    `json:"page_eighths"`
}

type UpdateSceneRequest struct {
	SceneNumber string `json:"scene_number"`
	Description string `json:"description"`
	PageEighths int    `json:"page_eighths"`
}

type CreateBudgetLineRequest struct {
	Code            string  `json:"code"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	EstimatedAmount float64 `json:"estimated_amount"`
}

type UpdateBudgetLineRequest struct {
	Code            string  `json:"code"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	EstimatedAmount float64 `json:"estimated_amount"`
}
