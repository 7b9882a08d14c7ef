package models

import "time"

type Notification struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	Kind       string    `json:"kind" db:"kind"` // receipt_review, job_application, greenroom_status, rental_order
	Title      string    `json:"title" db:"title"`
	Body       string    `json:"body" db:"body"`
	EntityKind string    `json:"entity_kind,omitempty" db:"entity_kind"`
	EntityID   int       `json:"entity_id,omitempty" db:"entity_id"`
	Read       bool      `json:"read" db:"read"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

const (
	NotifyKindReceiptReview   = "receipt_review"
	NotifyKindJobApplication  = "job_application"
	NotifyKindGreenroomStatus = "greenroom_status"
	NotifyKindRentalOrder     = "rental_order"
)
