package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

// ErrNoTicketsRemaining is returned when a vote would exceed the voter's
// ticket allowance for the cycle.
var ErrNoTicketsRemaining = errors.New("no voting tickets remaining")

type GreenroomRepository struct {
	DB *pgxpool.Pool
}

func NewGreenroomRepository(db *pgxpool.Pool) *GreenroomRepository {
	return &GreenroomRepository{DB: db}
}

// CreateProject submits a project into the contest with status pending
func (r *GreenroomRepository) CreateProject(ctx context.Context, project *models.GreenroomProject) error {
	query := `
		INSERT INTO greenroom_projects (owner_id, title, logline, synopsis, cycle, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, submitted_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		project.OwnerID, project.Title, project.Logline, project.Synopsis,
		project.Cycle, project.Status,
	).Scan(&project.ID, &project.SubmittedAt, &project.UpdatedAt)
}

// GetProject retrieves a project by ID
func (r *GreenroomRepository) GetProject(ctx context.Context, id int) (*models.GreenroomProject, error) {
	query := `
		SELECT id, owner_id, title, logline, synopsis, cycle, status, review_note,
		       submitted_at, updated_at
		FROM greenroom_projects
		WHERE id = $1
	`
	project := &models.GreenroomProject{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&project.ID, &project.OwnerID, &project.Title, &project.Logline, &project.Synopsis,
		&project.Cycle, &project.Status, &project.ReviewNote,
		&project.SubmittedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects retrieves projects for a cycle, optionally filtered by status
func (r *GreenroomRepository) ListProjects(ctx context.Context, cycle, status string) ([]*models.GreenroomProject, error) {
	query := `
		SELECT id, owner_id, title, logline, synopsis, cycle, status, review_note,
		       submitted_at, updated_at
		FROM greenroom_projects
		WHERE cycle = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY submitted_at DESC
	`
	rows, err := r.DB.Query(ctx, query, cycle, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.GreenroomProject
	for rows.Next() {
		project := &models.GreenroomProject{}
		err := rows.Scan(
			&project.ID, &project.OwnerID, &project.Title, &project.Logline, &project.Synopsis,
			&project.Cycle, &project.Status, &project.ReviewNote,
			&project.SubmittedAt, &project.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// UpdateProject applies a partial edit to title, logline and synopsis
func (r *GreenroomRepository) UpdateProject(ctx context.Context, id int, title, logline, synopsis *string) error {
	query := `
		UPDATE greenroom_projects
		SET title = COALESCE($1, title),
		    logline = COALESCE($2, logline),
		    synopsis = COALESCE($3, synopsis),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`
	_, err := r.DB.Exec(ctx, query, title, logline, synopsis, id)
	return err
}

// SetProjectStatus records the review decision and note
func (r *GreenroomRepository) SetProjectStatus(ctx context.Context, id int, status, reviewNote string) error {
	query := `
		UPDATE greenroom_projects
		SET status = $1, review_note = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	_, err := r.DB.Exec(ctx, query, status, reviewNote, id)
	return err
}

// DeleteProject withdraws a submission; its votes cascade away
func (r *GreenroomRepository) DeleteProject(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM greenroom_projects WHERE id = $1`, id)
	return err
}

// GrantTickets sets a voter's allowance for the cycle, creating the row on
// first grant. Used count is preserved across re-grants.
func (r *GreenroomRepository) GrantTickets(ctx context.Context, userID int, cycle string, allowance int) (*models.VotingTicket, error) {
	query := `
		INSERT INTO voting_tickets (user_id, cycle, allowance)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, cycle)
		DO UPDATE SET allowance = EXCLUDED.allowance, updated_at = CURRENT_TIMESTAMP
		RETURNING id, user_id, cycle, allowance, used, updated_at
	`
	ticket := &models.VotingTicket{}
	err := r.DB.QueryRow(ctx, query, userID, cycle, allowance).Scan(
		&ticket.ID, &ticket.UserID, &ticket.Cycle, &ticket.Allowance, &ticket.Used, &ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// GetTicket retrieves a voter's ticket row for the cycle
func (r *GreenroomRepository) GetTicket(ctx context.Context, userID int, cycle string) (*models.VotingTicket, error) {
	query := `
		SELECT id, user_id, cycle, allowance, used, updated_at
		FROM voting_tickets
		WHERE user_id = $1 AND cycle = $2
	`
	ticket := &models.VotingTicket{}
	err := r.DB.QueryRow(ctx, query, userID, cycle).Scan(
		&ticket.ID, &ticket.UserID, &ticket.Cycle, &ticket.Allowance, &ticket.Used, &ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// CastVote spends one ticket on a project. The guarded UPDATE and the vote
// insert commit together; a voter can never spend past the allowance even
// under concurrent requests.
func (r *GreenroomRepository) CastVote(ctx context.Context, projectID, voterID int, cycle string) (*models.Vote, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE voting_tickets
		SET used = used + 1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1 AND cycle = $2 AND used < allowance
	`, voterID, cycle)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNoTicketsRemaining
	}

	vote := &models.Vote{ProjectID: projectID, VoterID: voterID, TicketsSpent: 1}
	err = tx.QueryRow(ctx, `
		INSERT INTO votes (project_id, voter_id, tickets_spent)
		VALUES ($1, $2, 1)
		RETURNING id, created_at
	`, projectID, voterID).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return vote, nil
}

// ListVotesByVoter retrieves a voter's votes within a cycle
func (r *GreenroomRepository) ListVotesByVoter(ctx context.Context, voterID int, cycle string) ([]*models.Vote, error) {
	query := `
		SELECT v.id, v.project_id, v.voter_id, v.tickets_spent, v.created_at
		FROM votes v
		JOIN greenroom_projects gp ON gp.id = v.project_id
		WHERE v.voter_id = $1 AND gp.cycle = $2
		ORDER BY v.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, voterID, cycle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []*models.Vote
	for rows.Next() {
		vote := &models.Vote{}
		err := rows.Scan(&vote.ID, &vote.ProjectID, &vote.VoterID, &vote.TicketsSpent, &vote.CreatedAt)
		if err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}
	return votes, rows.Err()
}

// TallyVotes counts votes per project for the cycle, recomputed on every call
func (r *GreenroomRepository) TallyVotes(ctx context.Context, cycle string) ([]models.ProjectTally, error) {
	query := `
		SELECT gp.id, gp.title, gp.status, COALESCE(SUM(v.tickets_spent), 0) AS votes
		FROM greenroom_projects gp
		LEFT JOIN votes v ON v.project_id = gp.id
		WHERE gp.cycle = $1
		GROUP BY gp.id
		ORDER BY votes DESC, gp.submitted_at ASC
	`
	rows, err := r.DB.Query(ctx, query, cycle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tallies []models.ProjectTally
	for rows.Next() {
		var tally models.ProjectTally
		if err := rows.Scan(&tally.ProjectID, &tally.Title, &tally.Status, &tally.Votes); err != nil {
			return nil, err
		}
		tallies = append(tallies, tally)
	}
	return tallies, rows.Err()
}

// CountVoters counts distinct users who voted in the cycle
func (r *GreenroomRepository) CountVoters(ctx context.Context, cycle string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT v.voter_id)
		FROM votes v
		JOIN greenroom_projects gp ON gp.id = v.project_id
		WHERE gp.cycle = $1
	`
	var count int
	err := r.DB.QueryRow(ctx, query, cycle).Scan(&count)
	return count, err
}

// CountTicketHolders counts users granted at least one ticket in the cycle
func (r *GreenroomRepository) CountTicketHolders(ctx context.Context, cycle string) (int, error) {
	query := `SELECT COUNT(*) FROM voting_tickets WHERE cycle = $1 AND allowance > 0`
	var count int
	err := r.DB.QueryRow(ctx, query, cycle).Scan(&count)
	return count, err
}
