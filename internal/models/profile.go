package models

import "time"

type Profile struct {
	UserID      int       `json:"user_id" db:"user_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Headline    string    `json:"headline" db:"headline"`
	Bio         string    `json:"bio" db:"bio"`
	Department  string    `json:"department" db:"department"`
	Location    string    `json:"location" db:"location"`
	Credits     []Credit  `json:"credits" db:"credits"`
	AvatarKey   string    `json:"-" db:"avatar_key"`
	AvatarURL   string    `json:"avatar_url" db:"avatar_url"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Credit is one line of a member's credit list, stored as JSONB
type Credit struct {
	Title string `json:"title"`
	Role  string `json:"role"`
	Year  int    `json:"year"`
}

type UpdateProfileRequest struct {
	DisplayName string   `json:"display_name"`
	Headline    string   `json:"headline"`
	Bio         string   `json:"bio"`
	Department  string   `json:"department"`
	Location    string   `json:"location"`
	Credits     []Credit `json:"credits"`
}
