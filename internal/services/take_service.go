package services

import (
	"context"
	"errors"
	"regexp"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
)

// SMPTE-style HH:MM:SS:FF
var timecodePattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}:\d{2}$`)

type TakeService struct {
	Repo        *repositories.TakeRepository
	Productions *repositories.ProductionRepository
}

func NewTakeService(repo *repositories.TakeRepository, productions *repositories.ProductionRepository) *TakeService {
	return &TakeService{Repo: repo, Productions: productions}
}

func (s *TakeService) getScoped(ctx context.Context, productionID, takeID int) (*models.Take, error) {
	take, err := s.Repo.GetTake(ctx, takeID)
	if err != nil || take.ProductionID != productionID {
		return nil, errors.New("take not found")
	}
	return take, nil
}

// CreateTake logs a take. When the request leaves the take number at zero
// the next number for the scene is assigned in the same statement, so two
// scripties logging at once never collide.
func (s *TakeService) CreateTake(ctx context.Context, productionID, userID int, req *models.CreateTakeRequest) (*models.Take, error) {
	if err := requireScripty(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	if req.SceneNumber == "" {
		return nil, errors.New("scene number is required")
	}
	status := req.Status
	if status == "" {
		status = models.TakeStatusOK
	}
	if !models.ValidTakeStatus(status) {
		return nil, errors.New("invalid take status")
	}
	if req.Timecode != "" && !timecodePattern.MatchString(req.Timecode) {
		return nil, errors.New("timecode must be HH:MM:SS:FF")
	}
	if req.TakeNumber < 0 {
		return nil, errors.New("take number cannot be negative")
	}
	take := &models.Take{
		ProductionID: productionID,
		ShootDayID:   req.ShootDayID,
		SceneNumber:  req.SceneNumber,
		TakeNumber:   req.TakeNumber,
		Status:       status,
		Camera:       req.Camera,
		Setup:        req.Setup,
		Timecode:     req.Timecode,
		Notes:        req.Notes,
		LoggedBy:     userID,
	}
	if err := s.Repo.CreateTake(ctx, take); err != nil {
		return nil, err
	}
	return take, nil
}

// GetTake retrieves one take
func (s *TakeService) GetTake(ctx context.Context, productionID, userID, takeID int) (*models.Take, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	return s.getScoped(ctx, productionID, takeID)
}

// ListTakes retrieves takes filtered by scene and shoot day
func (s *TakeService) ListTakes(ctx context.Context, productionID, userID int, sceneNumber string, shootDayID int) ([]*models.Take, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListTakes(ctx, productionID, sceneNumber, shootDayID)
}

// NextTakeNumber reports the number the next take for a scene will get
func (s *TakeService) NextTakeNumber(ctx context.Context, productionID, userID int, sceneNumber string) (*models.NextTakeResponse, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	if sceneNumber == "" {
		return nil, errors.New("scene number is required")
	}
	next, err := s.Repo.NextTakeNumber(ctx, productionID, sceneNumber)
	if err != nil {
		return nil, err
	}
	return &models.NextTakeResponse{SceneNumber: sceneNumber, NextTake: next}, nil
}

// UpdateTake edits status, labels or notes. Status moves are a flat set: a
// single update takes any take to any status.
func (s *TakeService) UpdateTake(ctx context.Context, productionID, userID, takeID int, req *models.UpdateTakeRequest) (*models.Take, error) {
	if err := requireScripty(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	take, err := s.getScoped(ctx, productionID, takeID)
	if err != nil {
		return nil, err
	}
	if req.Status != nil && !models.ValidTakeStatus(*req.Status) {
		return nil, errors.New("invalid take status")
	}
	if req.Timecode != nil && *req.Timecode != "" && !timecodePattern.MatchString(*req.Timecode) {
		return nil, errors.New("timecode must be HH:MM:SS:FF")
	}
	err = s.Repo.UpdateTake(ctx, take.ID, req.Status, req.Camera, req.Setup, req.Timecode, req.Notes)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetTake(ctx, take.ID)
}

// DeleteTake removes a logged take
func (s *TakeService) DeleteTake(ctx context.Context, productionID, userID, takeID int) error {
	if err := requireScripty(ctx, s.Productions, productionID, userID); err != nil {
		return err
	}
	take, err := s.getScoped(ctx, productionID, takeID)
	if err != nil {
		return err
	}
	return s.Repo.DeleteTake(ctx, take.ID)
}

// SceneSummary reports per-scene take counts and print status for the
// production's log view
func (s *TakeService) SceneSummary(ctx context.Context, productionID, userID int) ([]map[string]interface{}, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.SceneSummary(ctx, productionID)
}
