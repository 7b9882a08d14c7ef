package models

import "time"

type JobListing struct {
	ID           int       `json:"id" db:"id"`
	PosterID     int       `json:"poster_id" db:"poster_id"`
	ProductionID *int      `json:"production_id,omitempty" db:"production_id"`
	Title        string    `json:"title" db:"title"`
	Department   string    `json:"department" db:"department"`
	Description  string    `json:"description" db:"description"`
	Location     string    `json:"location" db:"location"`
	Rate         string    `json:"rate" db:"rate"`     // free text, "450/day" etc.
	Status       string    `json:"status" db:"status"` // open, closed
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type JobApplication struct {
	ID            int       `json:"id" db:"id"`
	ListingID     int       `json:"listing_id" db:"listing_id"`
	ApplicantID   int       `json:"applicant_id" db:"applicant_id"`
	ApplicantName string    `json:"applicant_name,omitempty" db:"-"`
	Message       string    `json:"message" db:"message"`
	Status        string    `json:"status" db:"status"` // pending, accepted, declined
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusDeclined = "declined"
)

type CreateJobListingRequest struct {
	ProductionID *int   `json:"production_id"`
	Title        string `json:"title"`
	Department   string `json:"department"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Rate         string `json:"rate"`
}

type UpdateJobListingRequest struct {
	Title       *string `json:"title"`
	Department  *string `json:"department"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Rate        *string `json:"rate"`
	Status      *string `json:"status"`
}

type ApplyRequest struct {
	Message string `json:"message"`
}
