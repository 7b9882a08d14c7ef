package models

import "time"

type ContinuityNote struct {
	ID           int       `json:"id" db:"id"`
	ProductionID int       `json:"production_id" db:"production_id"`
	SceneNumber  string    `json:"scene_number" db:"scene_number"`
	Category     string    `json:"category" db:"category"` // props, wardrobe, makeup, set, camera, other
	Body         string    `json:"body" db:"body"`
	AuthorID     int       `json:"author_id" db:"author_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type ContinuityPhoto struct {
	ID           int       `json:"id" db:"id"`
	ProductionID int       `json:"production_id" db:"production_id"`
	SceneNumber  string    `json:"scene_number" db:"scene_number"`
	Caption      string    `json:"caption" db:"caption"`
	StorageKey   string    `json:"-" db:"storage_key"`
	FileURL      string    `json:"file_url" db:"file_url"`
	AuthorID     int       `json:"author_id" db:"author_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type CreateContinuityNoteRequest struct {
	SceneNumber string `json:"scene_number"`
	Category    string `json:"category"`
	Body        string `json:"body"`
}

type UpdateContinuityNoteRequest struct {
	Category *string `json:"category"`
	Body     *string `json:"body"`
}

type UpdateContinuityPhotoRequest struct {
	Caption string `json:"caption"`
}
