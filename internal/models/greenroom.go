package models

import "time"

type GreenroomProject struct {
	ID          int       `json:"id" db:"id"`
	OwnerID     int       `json:"owner_id" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Logline     string    `json:"logline" db:"logline"`
	Synopsis    string    `json:"synopsis" db:"synopsis"`
	Cycle       string    `json:"cycle" db:"cycle"`
	Status      string    `json:"status" db:"status"` // pending, approved, shortlisted, rejected, flagged
	ReviewNote  string    `json:"review_note,omitempty" db:"review_note"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

const (
	ProjectStatusPending     = "pending"
	ProjectStatusApproved    = "approved"
	ProjectStatusShortlisted = "shortlisted"
	ProjectStatusRejected    = "rejected"
	ProjectStatusFlagged     = "flagged"
)

// ValidProjectStatus reports membership in the submission status set.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusPending, ProjectStatusApproved, ProjectStatusShortlisted,
		ProjectStatusRejected, ProjectStatusFlagged:
		return true
	}
	return false
}

type VotingTicket struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Cycle     string    `json:"cycle" db:"cycle"`
	Allowance int       `json:"allowance" db:"allowance"`
	Used      int       `json:"used" db:"used"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Remaining is display math, recomputed per read.
func (t *VotingTicket) Remaining() int {
	return t.Allowance - t.Used
}

type Vote struct {
	ID           int       `json:"id" db:"id"`
	ProjectID    int       `json:"project_id" db:"project_id"`
	VoterID      int       `json:"voter_id" db:"voter_id"`
	TicketsSpent int       `json:"tickets_spent" db:"tickets_spent"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type SubmitProjectRequest struct {
	Title    string `json:"title"`
	Logline  string `json:"logline"`
	Synopsis string `json:"synopsis"`
}

type UpdateProjectRequest struct {
	Title    *string `json:"title"`
	Logline  *string `json:"logline"`
	Synopsis *string `json:"synopsis"`
}

// SetProjectStatusRequest is the admin review payload
type SetProjectStatusRequest struct {
	Status     string `json:"status"`
	ReviewNote string `json:"review_note"`
}

type GrantTicketsRequest struct {
	UserID    int `json:"user_id"`
	Allowance int `json:"allowance"`
}

// ProjectTally is a per-project vote count, computed from vote rows at read
// time and never stored.
type ProjectTally struct {
	ProjectID int    `json:"project_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Votes     int    `json:"votes"`
}

// GreenroomResults is the contest scoreboard for one cycle.
type GreenroomResults struct {
	Cycle             string         `json:"cycle"`
	Tallies           []ProjectTally `json:"tallies"`
	Voters            int            `json:"voters"`
	TicketHolders     int            `json:"ticket_holders"`
	ParticipationRate float64        `json:"participation_rate"` // voters / ticket holders
}
