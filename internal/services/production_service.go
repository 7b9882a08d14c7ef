package services

import (
	"context"
	"errors"
	"time"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
)

type ProductionService struct {
	Repo *repositories.ProductionRepository
}

func NewProductionService(repo *repositories.ProductionRepository) *ProductionService {
	return &ProductionService{Repo: repo}
}

// CreateProduction opens a workspace with the caller as owner
func (s *ProductionService) CreateProduction(ctx context.Context, ownerID int, req *models.CreateProductionRequest) (*models.Production, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	production := &models.Production{
		Title:   req.Title,
		Company: req.Company,
		Status:  models.ProductionStatusPrep,
		OwnerID: ownerID,
	}
	if err := s.Repo.CreateProduction(ctx, production); err != nil {
		return nil, err
	}
	return production, nil
}

// GetProduction retrieves a production the caller belongs to
func (s *ProductionService) GetProduction(ctx context.Context, productionID, userID int) (*models.Production, error) {
	if _, err := requireMember(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.GetProduction(ctx, productionID)
}

// ListProductions retrieves the caller's productions
func (s *ProductionService) ListProductions(ctx context.Context, userID int) ([]*models.Production, error) {
	return s.Repo.ListProductionsForUser(ctx, userID)
}

// UpdateProduction edits title, company and status (owner/manager)
func (s *ProductionService) UpdateProduction(ctx context.Context, productionID, userID int, req *models.UpdateProductionRequest) (*models.Production, error) {
	if err := requireManager(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	switch req.Status {
	case models.ProductionStatusPrep, models.ProductionStatusShooting, models.ProductionStatusWrapped:
	default:
		return nil, errors.New("invalid production status")
	}
	if err := s.Repo.UpdateProduction(ctx, productionID, req.Title, req.Company, req.Status); err != nil {
		return nil, err
	}
	return s.Repo.GetProduction(ctx, productionID)
}

// DeleteProduction removes the workspace (owner only)
func (s *ProductionService) DeleteProduction(ctx context.Context, productionID, userID int) error {
	role, err := requireMember(ctx, s.Repo, productionID, userID)
	if err != nil {
		return err
	}
	if role != models.MemberRoleOwner {
		return ErrForbidden
	}
	return s.Repo.DeleteProduction(ctx, productionID)
}

// AddMember enrolls a user on the roster (owner/manager)
func (s *ProductionService) AddMember(ctx context.Context, productionID, callerID int, req *models.AddMemberRequest) error {
	if err := requireManager(ctx, s.Repo, productionID, callerID); err != nil {
		return err
	}
	switch req.Role {
	case models.MemberRoleManager, models.MemberRoleCrew, models.MemberRoleScripty:
	default:
		return errors.New("invalid member role")
	}
	return s.Repo.AddMember(ctx, productionID, req.UserID, req.Role)
}

// RemoveMember drops a user from the roster (owner/manager); the owner
// cannot be removed.
func (s *ProductionService) RemoveMember(ctx context.Context, productionID, callerID, userID int) error {
	if err := requireManager(ctx, s.Repo, productionID, callerID); err != nil {
		return err
	}
	production, err := s.Repo.GetProduction(ctx, productionID)
	if err != nil {
		return err
	}
	if production.OwnerID == userID {
		return errors.New("cannot remove the production owner")
	}
	return s.Repo.RemoveMember(ctx, productionID, userID)
}

// ListMembers retrieves the roster
func (s *ProductionService) ListMembers(ctx context.Context, productionID, userID int) ([]*models.ProductionMember, error) {
	if _, err := requireMember(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListMembers(ctx, productionID)
}

// CreateShootDay adds a day to the schedule (owner/manager)
func (s *ProductionService) CreateShootDay(ctx context.Context, productionID, userID int, req *models.CreateShootDayRequest) (*models.ShootDay, error) {
	if err := requireManager(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	if req.DayNumber <= 0 {
		return nil, errors.New("day number must be positive")
	}
	day := &models.ShootDay{
		ProductionID: productionID,
		DayNumber:    req.DayNumber,
		Location:     req.Location,
	}
	if req.ShootDate != "" {
		date, err := time.Parse("2006-01-02", req.ShootDate)
		if err != nil {
			return nil, errors.New("shoot date must be YYYY-MM-DD")
		}
		day.ShootDate = &date
	}
	if err := s.Repo.CreateShootDay(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

// ListShootDays retrieves the schedule
func (s *ProductionService) ListShootDays(ctx context.Context, productionID, userID int) ([]*models.ShootDay, error) {
	if _, err := requireMember(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListShootDays(ctx, productionID)
}

// UpdateShootDay rewrites a day on the schedule (owner/manager)
func (s *ProductionService) UpdateShootDay(ctx context.Context, productionID, userID, dayID int, req *models.UpdateShootDayRequest) (*models.ShootDay, error) {
	if err := requireManager(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	if req.DayNumber <= 0 {
		return nil, errors.New("day number must be positive")
	}
	day := &models.ShootDay{
		ID:           dayID,
		ProductionID: productionID,
		DayNumber:    req.DayNumber,
		Location:     req.Location,
	}
	if req.ShootDate != "" {
		date, err := time.Parse("2006-01-02", req.ShootDate)
		if err != nil {
			return nil, errors.New("shoot date must be YYYY-MM-DD")
		}
		day.ShootDate = &date
	}
	if err := s.Repo.UpdateShootDay(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

// DeleteShootDay removes a day from the schedule (owner/manager)
func (s *ProductionService) DeleteShootDay(ctx context.Context, productionID, userID, dayID int) error {
	if err := requireManager(ctx, s.Repo, productionID, userID); err != nil {
		return err
	}
	return s.Repo.DeleteShootDay(ctx, productionID, dayID)
}

// CreateScene adds a scene to the breakdown (owner/manager/scripty)
func (s *ProductionService) CreateScene(ctx context.Context, productionID, userID int, req *models.CreateSceneRequest) (*models.Scene, error) {
	if err := requireScripty(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	if req.SceneNumber == "" {
		return nil, errors.New("scene number is required")
	}
	scene := &models.Scene{
		ProductionID: productionID,
		SceneNumber:  req.SceneNumber,
		Description:  req.Description,
		PageEighths:  req.PageEighths,
	}
	if err := s.Repo.CreateScene(ctx, scene); err != nil {
		return nil, err
	}
	return scene, nil
}

// ListScenes retrieves the breakdown
func (s *ProductionService) ListScenes(ctx context.Context, productionID, userID int) ([]*models.Scene, error) {
	if _, err := requireMember(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListScenes(ctx, productionID)
}

// UpdateScene rewrites a scene in the breakdown (owner/manager/scripty)
func (s *ProductionService) UpdateScene(ctx context.Context, productionID, userID, sceneID int, req *models.UpdateSceneRequest) (*models.Scene, error) {
	if err := requireScripty(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	if req.SceneNumber == "" {
		return nil, errors.New("scene number is required")
	}
	scene := &models.Scene{
		ID:           sceneID,
		ProductionID: productionID,
		SceneNumber:  req.SceneNumber,
		Description:  req.Description,
		PageEighths:  req.PageEighths,
	}
	if err := s.Repo.UpdateScene(ctx, scene); err != nil {
		return nil, err
	}
	return scene, nil
}

// DeleteScene removes a scene (owner/manager/scripty)
func (s *ProductionService) DeleteScene(ctx context.Context, productionID, userID, sceneID int) error {
	if err := requireScripty(ctx, s.Repo, productionID, userID); err != nil {
		return err
	}
	return s.Repo.DeleteScene(ctx, productionID, sceneID)
}

// CreateBudgetLine adds a line to the budget (owner/manager)
func (s *ProductionService) CreateBudgetLine(ctx context.Context, productionID, userID int, req *models.CreateBudgetLineRequest) (*models.BudgetLine, error) {
	if err := requireManager(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	if req.Category == "" {
		return nil, errors.New("category is required")
	}
	line := &models.BudgetLine{
		ProductionID:    productionID,
		Code:            req.Code,
		Category:        req.Category,
		Description:     req.Description,
		EstimatedAmount: req.EstimatedAmount,
	}
	if err := s.Repo.CreateBudgetLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// ListBudget retrieves budget lines with actuals recomputed from receipts
func (s *ProductionService) ListBudget(ctx context.Context, productionID, userID int) ([]*models.BudgetLineWithActuals, error) {
	if _, err := requireMember(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListBudgetLinesWithActuals(ctx, productionID)
}

// UpdateBudgetLine rewrites a line (owner/manager)
func (s *ProductionService) UpdateBudgetLine(ctx context.Context, productionID, userID, lineID int, req *models.UpdateBudgetLineRequest) (*models.BudgetLine, error) {
	if err := requireManager(ctx, s.Repo, productionID, userID); err != nil {
		return nil, err
	}
	if req.Category == "" {
		return nil, errors.New("category is required")
	}
	line := &models.BudgetLine{
		ID:              lineID,
		ProductionID:    productionID,
		Code:            req.Code,
		Category:        req.Category,
		Description:     req.Description,
		EstimatedAmount: req.EstimatedAmount,
	}
	if err := s.Repo.UpdateBudgetLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteBudgetLine removes a line (owner/manager)
func (s *ProductionService) DeleteBudgetLine(ctx context.Context, productionID, userID, lineID int) error {
	if err := requireManager(ctx, s.Repo, productionID, userID); err != nil {
		return err
	}
	return s.Repo.DeleteBudgetLine(ctx, productionID, lineID)
}
