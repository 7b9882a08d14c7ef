package models

import "time"

type User struct {
	ID             int        `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Email          string     `json:"email" db:"email"`
	PasswordHash   string     `json:"-" db:"password_hash"` // Never expose in JSON
	Role           string     `json:"role" db:"role"`       // admin or member
	Confirmed      bool       `json:"confirmed" db:"confirmed"`
	TOTPSecret     string     `json:"-" db:"totp_secret"`
	TOTPEnabled    bool       `json:"totp_enabled" db:"totp_enabled"`
	TOTPVerifiedAt *time.Time `json:"-" db:"totp_verified_at"`
	BackupCodes    string     `json:"-" db:"backup_codes"`
	IsActive       bool       `json:"is_active" db:"is_active"` // false = suspended
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// RefreshRequest exchanges a refresh token for a new session pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ConfirmRequest carries the emailed confirmation code
type ConfirmRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// UpdateMetadataRequest updates the caller's own account fields
type UpdateMetadataRequest struct {
	Name string `json:"name"`
}

// CreateUserRequest represents the admin request body for creating a user
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest represents the admin request body for updating a user
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"` // Optional
	Role     string `json:"role"`
}

// PasswordStrength is the checklist-style strength report shown during signup
type PasswordStrength struct {
	Score  int             `json:"score"`  // number of passed checks, 0-5
	Label  string          `json:"label"`  // Weak, Medium, Strong
	Width  int             `json:"width"`  // meter fill percentage: 33, 66, 100
	Checks map[string]bool `json:"checks"` // length, lowercase, uppercase, digit, special
}

// PasswordStrengthRequest scores a candidate password
type PasswordStrengthRequest struct {
	Password string `json:"password"`
}
