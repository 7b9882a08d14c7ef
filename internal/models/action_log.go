package models

import "time"

// ActionLog records privileged actions (reviews, status changes, grants) for
// the admin audit trail.
type ActionLog struct {
	ID         int       `json:"id" db:"id"`
	ActorID    int       `json:"actor_id" db:"actor_id"`
	Action     string    `json:"action" db:"action"`
	EntityKind string    `json:"entity_kind" db:"entity_kind"`
	EntityID   int       `json:"entity_id" db:"entity_id"`
	Detail     string    `json:"detail,omitempty" db:"detail"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
