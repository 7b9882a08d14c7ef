package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/cache"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/timeutil"
)

const defaultTicketAllowance = 3

type GreenroomService struct {
	Repo          *repositories.GreenroomRepository
	Settings      *repositories.SystemSettingRepository
	ActionLogs    *repositories.ActionLogRepository
	Notifications *NotificationService
	Logger        *zap.Logger
}

func NewGreenroomService(
	repo *repositories.GreenroomRepository,
	settings *repositories.SystemSettingRepository,
	actionLogs *repositories.ActionLogRepository,
	notifications *NotificationService,
	logger *zap.Logger,
) *GreenroomService {
	return &GreenroomService{
		Repo:          repo,
		Settings:      settings,
		ActionLogs:    actionLogs,
		Notifications: notifications,
		Logger:        logger,
	}
}

// ActiveCycle returns the contest cycle submissions and votes land in
func (s *GreenroomService) ActiveCycle(ctx context.Context) string {
	return s.Settings.GetString(ctx, models.SettingGreenroomCycle, timeutil.Now().Format("2006-01"))
}

// SubmitProject enters a project into the active cycle for review
func (s *GreenroomService) SubmitProject(ctx context.Context, ownerID int, req *models.SubmitProjectRequest) (*models.GreenroomProject, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.Logline == "" {
		return nil, errors.New("logline is required")
	}
	project := &models.GreenroomProject{
		OwnerID:  ownerID,
		Title:    req.Title,
		Logline:  req.Logline,
		Synopsis: req.Synopsis,
		Cycle:    s.ActiveCycle(ctx),
		Status:   models.ProjectStatusPending,
	}
	if err := s.Repo.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject retrieves a project. Pending, rejected and flagged projects are
// visible only to their owner and admins.
func (s *GreenroomService) GetProject(ctx context.Context, projectID, userID int, isAdmin bool) (*models.GreenroomProject, error) {
	project, err := s.Repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, errors.New("project not found")
	}
	switch project.Status {
	case models.ProjectStatusApproved, models.ProjectStatusShortlisted:
		return project, nil
	}
	if project.OwnerID == userID || isAdmin {
		return project, nil
	}
	return nil, errors.New("project not found")
}

// ListProjects retrieves the voting slate. Non-admins only see approved and
// shortlisted projects; admins may filter by any status.
func (s *GreenroomService) ListProjects(ctx context.Context, cycle, status string, isAdmin bool) ([]*models.GreenroomProject, error) {
	if cycle == "" {
		cycle = s.ActiveCycle(ctx)
	}
	if isAdmin {
		return s.Repo.ListProjects(ctx, cycle, status)
	}
	approved, err := s.Repo.ListProjects(ctx, cycle, models.ProjectStatusApproved)
	if err != nil {
		return nil, err
	}
	shortlisted, err := s.Repo.ListProjects(ctx, cycle, models.ProjectStatusShortlisted)
	if err != nil {
		return nil, err
	}
	return append(approved, shortlisted...), nil
}

// ListMyProjects retrieves the caller's own submissions across statuses
func (s *GreenroomService) ListMyProjects(ctx context.Context, ownerID int, cycle string) ([]*models.GreenroomProject, error) {
	if cycle == "" {
		cycle = s.ActiveCycle(ctx)
	}
	projects, err := s.Repo.ListProjects(ctx, cycle, "")
	if err != nil {
		return nil, err
	}
	var mine []*models.GreenroomProject
	for _, project := range projects {
		if project.OwnerID == ownerID {
			mine = append(mine, project)
		}
	}
	return mine, nil
}

// UpdateProject edits a submission; allowed for the owner while pending
func (s *GreenroomService) UpdateProject(ctx context.Context, projectID, userID int, req *models.UpdateProjectRequest) (*models.GreenroomProject, error) {
	project, err := s.Repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, errors.New("project not found")
	}
	if project.OwnerID != userID {
		return nil, ErrForbidden
	}
	if project.Status != models.ProjectStatusPending {
		return nil, errors.New("only pending projects can be edited")
	}
	if err := s.Repo.UpdateProject(ctx, projectID, req.Title, req.Logline, req.Synopsis); err != nil {
		return nil, err
	}
	return s.Repo.GetProject(ctx, projectID)
}

// SetStatus is the admin review transition. Any of the five statuses can be
// set; the owner is notified and the move lands in the audit trail.
func (s *GreenroomService) SetStatus(ctx context.Context, projectID, adminID int, req *models.SetProjectStatusRequest) (*models.GreenroomProject, error) {
	if !models.ValidProjectStatus(req.Status) {
		return nil, errors.New("invalid project status")
	}
	project, err := s.Repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, errors.New("project not found")
	}
	if err := s.Repo.SetProjectStatus(ctx, projectID, req.Status, req.ReviewNote); err != nil {
		return nil, err
	}
	cache.InvalidateGreenroomCaches(ctx)

	body := fmt.Sprintf("Your project %q is now %s.", project.Title, req.Status)
	if req.ReviewNote != "" {
		body += " Note: " + req.ReviewNote
	}
	s.Notifications.Notify(ctx, project.OwnerID, models.NotifyKindGreenroomStatus,
		"Green Room update", body, "greenroom_project", project.ID)

	logErr := s.ActionLogs.CreateActionLog(ctx, &models.ActionLog{
		ActorID:    adminID,
		Action:     "greenroom_set_status",
		EntityKind: "greenroom_project",
		EntityID:   project.ID,
		Detail:     fmt.Sprintf("%s -> %s", project.Status, req.Status),
	})
	if logErr != nil {
		s.Logger.Error("failed to record status change", zap.Error(logErr))
	}

	return s.Repo.GetProject(ctx, projectID)
}

// DeleteProject withdraws a submission; owner while pending, admin any time
func (s *GreenroomService) DeleteProject(ctx context.Context, projectID, userID int, isAdmin bool) error {
	project, err := s.Repo.GetProject(ctx, projectID)
	if err != nil {
		return errors.New("project not found")
	}
	if !isAdmin {
		if project.OwnerID != userID {
			return ErrForbidden
		}
		if project.Status != models.ProjectStatusPending {
			return errors.New("only pending projects can be withdrawn")
		}
	}
	if err := s.Repo.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	cache.InvalidateGreenroomCaches(ctx)
	return nil
}

// GrantTickets sets a user's voting allowance for the active cycle. A zero
// allowance in the request grants the configured default.
func (s *GreenroomService) GrantTickets(ctx context.Context, adminID int, req *models.GrantTicketsRequest) (*models.VotingTicket, error) {
	if req.UserID <= 0 {
		return nil, errors.New("user id is required")
	}
	allowance := req.Allowance
	if allowance <= 0 {
		allowance = s.Settings.GetInt(ctx, models.SettingGreenroomAllowance, defaultTicketAllowance)
	}
	ticket, err := s.Repo.GrantTickets(ctx, req.UserID, s.ActiveCycle(ctx), allowance)
	if err != nil {
		return nil, err
	}
	cache.InvalidateGreenroomCaches(ctx)

	logErr := s.ActionLogs.CreateActionLog(ctx, &models.ActionLog{
		ActorID:    adminID,
		Action:     "greenroom_grant_tickets",
		EntityKind: "voting_ticket",
		EntityID:   ticket.ID,
		Detail:     fmt.Sprintf("user %d allowance %d", req.UserID, allowance),
	})
	if logErr != nil {
		s.Logger.Error("failed to record ticket grant", zap.Error(logErr))
	}
	return ticket, nil
}

// MyTicket reports the caller's balance for the active cycle. Users without
// a grant get a zero ticket rather than an error.
func (s *GreenroomService) MyTicket(ctx context.Context, userID int) (*models.VotingTicket, error) {
	cycle := s.ActiveCycle(ctx)
	ticket, err := s.Repo.GetTicket(ctx, userID, cycle)
	if err != nil {
		return &models.VotingTicket{UserID: userID, Cycle: cycle}, nil
	}
	return ticket, nil
}

// CastVote spends one ticket on an approved or shortlisted project. The
// balance check and the vote insert run in one transaction, so concurrent
// votes cannot overspend the allowance.
func (s *GreenroomService) CastVote(ctx context.Context, projectID, voterID int) (*models.Vote, error) {
	project, err := s.Repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, errors.New("project not found")
	}
	switch project.Status {
	case models.ProjectStatusApproved, models.ProjectStatusShortlisted:
	default:
		return nil, errors.New("voting is only open on approved projects")
	}
	vote, err := s.Repo.CastVote(ctx, projectID, voterID, project.Cycle)
	if err != nil {
		return nil, err
	}
	cache.InvalidateGreenroomCaches(ctx)
	return vote, nil
}

// MyVotes retrieves the caller's votes in the active cycle
func (s *GreenroomService) MyVotes(ctx context.Context, voterID int) ([]*models.Vote, error) {
	return s.Repo.ListVotesByVoter(ctx, voterID, s.ActiveCycle(ctx))
}

// Results builds the cycle scoreboard: per-project tallies plus the
// participation rate. Recomputed from vote rows on every read and cached
// for thirty seconds to ride out voting-window load.
func (s *GreenroomService) Results(ctx context.Context, cycle string) (*models.GreenroomResults, error) {
	if cycle == "" {
		cycle = s.ActiveCycle(ctx)
	}
	if data, ok := cache.GetCachedResults(ctx, cycle); ok {
		results := &models.GreenroomResults{}
		if err := json.Unmarshal(data, results); err == nil {
			return results, nil
		}
	}

	tallies, err := s.Repo.TallyVotes(ctx, cycle)
	if err != nil {
		return nil, err
	}
	voters, err := s.Repo.CountVoters(ctx, cycle)
	if err != nil {
		return nil, err
	}
	holders, err := s.Repo.CountTicketHolders(ctx, cycle)
	if err != nil {
		return nil, err
	}
	results := &models.GreenroomResults{
		Cycle:         cycle,
		Tallies:       tallies,
		Voters:        voters,
		TicketHolders: holders,
	}
	if holders > 0 {
		results.ParticipationRate = float64(voters) / float64(holders)
	}

	if data, err := json.Marshal(results); err == nil {
		cache.CacheResults(ctx, cycle, data)
	}
	return results, nil
}
