package models

import "time"

type RentalListing struct {
	ID          int       `json:"id" db:"id"`
	OwnerID     int       `json:"owner_id" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Category    string    `json:"category" db:"category"` // camera, lens, lighting, grip, sound, space, other
	Description string    `json:"description" db:"description"`
	DailyRate   float64   `json:"daily_rate" db:"daily_rate"`
	Deposit     float64   `json:"deposit" db:"deposit"`
	Location    string    `json:"location" db:"location"`
	PhotoKey    string    `json:"-" db:"photo_key"`
	PhotoURL    string    `json:"photo_url,omitempty" db:"photo_url"`
	Status      string    `json:"status" db:"status"` // listed, unlisted
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

const (
	ListingStatusListed   = "listed"
	ListingStatusUnlisted = "unlisted"
)

type RentalOrder struct {
	ID                int       `json:"id" db:"id"`
	ListingID         int       `json:"listing_id" db:"listing_id"`
	RenterID          int       `json:"renter_id" db:"renter_id"`
	StartDate         time.Time `json:"start_date" db:"start_date"`
	EndDate           time.Time `json:"end_date" db:"end_date"`
	Amount            float64   `json:"amount" db:"amount"` // days * daily rate + deposit
	Status            string    `json:"status" db:"status"` // pending_payment, confirmed, cancelled, completed
	RazorpayOrderID   string    `json:"razorpay_order_id,omitempty" db:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty" db:"razorpay_payment_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusCancelled      = "cancelled"
	OrderStatusCompleted      = "completed"
)

type CreateRentalListingRequest struct {
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	DailyRate   float64 `json:"daily_rate"`
	Deposit     float64 `json:"deposit"`
	Location    string  `json:"location"`
}

type UpdateRentalListingRequest struct {
	Title       *string  `json:"title"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	DailyRate   *float64 `json:"daily_rate"`
	Deposit     *float64 `json:"deposit"`
	Location    *string  `json:"location"`
	Status      *string  `json:"status"`
}

type CreateOrderRequest struct {
	ListingID int    `json:"listing_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`
}

// CheckoutResponse carries what the payment widget needs
type CheckoutResponse struct {
	Order           *RentalOrder `json:"order"`
	RazorpayKeyID   string       `json:"razorpay_key_id"`
	RazorpayOrderID string       `json:"razorpay_order_id"`
	AmountPaise     int64        `json:"amount_paise"`
	Currency        string       `json:"currency"`
}

// VerifyPaymentRequest completes checkout after the gateway callback
type VerifyPaymentRequest struct {
	OrderID           int    `json:"order_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
