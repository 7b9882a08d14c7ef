package models

import "time"

type Take struct {
	ID           int       `json:"id" db:"id"`
	ProductionID int       `json:"production_id" db:"production_id"`
	ShootDayID   *int      `json:"shoot_day_id,omitempty" db:"shoot_day_id"`
	SceneNumber  string    `json:"scene_number" db:"scene_number"`
	TakeNumber   int       `json:"take_number" db:"take_number"`
	Status       string    `json:"status" db:"status"`
	Camera       string    `json:"camera" db:"camera"` // "A", "B", ...
	Setup        string    `json:"setup" db:"setup"`
	Timecode     string    `json:"timecode" db:"timecode"` // HH:MM:SS:FF
	Notes        string    `json:"notes" db:"notes"`
	LoggedBy     int       `json:"logged_by" db:"logged_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Take statuses form a flat set; any take can move to any status with a
// single update.
const (
	TakeStatusOK         = "ok"
	TakeStatusPrint      = "print"
	TakeStatusCircled    = "circled"
	TakeStatusHold       = "hold"
	TakeStatusNG         = "ng"
	TakeStatusWild       = "wild"
	TakeStatusMOS        = "mos"
	TakeStatusFalseStart = "false_start"
)

// ValidTakeStatus reports membership in the allowed status set.
func ValidTakeStatus(s string) bool {
	switch s {
	case TakeStatusOK, TakeStatusPrint, TakeStatusCircled, TakeStatusHold,
		TakeStatusNG, TakeStatusWild, TakeStatusMOS, TakeStatusFalseStart:
		return true
	}
	return false
}

type CreateTakeRequest struct {
	ShootDayID  *int   `json:"shoot_day_id"`
	SceneNumber string `json:"scene_number"`
	TakeNumber  int    `json:"take_number"` // 0 = assign next for the scene
	Status      string `json:"status"`
	Camera      string `json:"camera"`
	Setup       string `json:"setup"`
	Timecode    string `json:"timecode"`
	Notes       string `json:"notes"`
}

type UpdateTakeRequest struct {
	Status   *string `json:"status"`
	Camera   *string `json:"camera"`
	Setup    *string `json:"setup"`
	Timecode *string `json:"timecode"`
	Notes    *string `json:"notes"`
}

// NextTakeResponse reports the next take number for a scene,
// max(existing)+1 or 1 when the scene has no takes yet.
type NextTakeResponse struct {
	SceneNumber string `json:"scene_number"`
	NextTake    int    `json:"next_take"`
}
