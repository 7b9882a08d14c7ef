package models

import "time"

// LoginLog records a successful sign-in for the admin audit trail. Sessions
// are stateless JWTs, so there is no logout side; created_at is the login
// moment.
type LoginLog struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	IPAddress string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent string    `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
