package services

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/storage"
)

type ProfileService struct {
	Repo   *repositories.ProfileRepository
	Store  storage.Store
	Logger *zap.Logger
}

func NewProfileService(repo *repositories.ProfileRepository, store storage.Store, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		Repo:   repo,
		Store:  store,
		Logger: logger,
	}
}

// GetProfile retrieves a member's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	return s.Repo.GetProfile(ctx, userID)
}

// UpdateProfile replaces the caller's editable profile fields
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.Profile, error) {
	if req.DisplayName == "" {
		return nil, errors.New("display name is required")
	}
	for _, credit := range req.Credits {
		if credit.Title == "" {
			return nil, errors.New("credit title is required")
		}
	}
	if err := s.Repo.UpdateProfile(ctx, userID, req); err != nil {
		return nil, err
	}
	return s.Repo.GetProfile(ctx, userID)
}

// UploadAvatar stores the image and replaces any previous avatar object
func (s *ProfileService) UploadAvatar(ctx context.Context, userID int, filename, contentType string, body io.Reader) (*models.Profile, error) {
	profile, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := storage.MakeKey("avatars", filename)
	url, err := s.Store.Put(ctx, key, body, contentType)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateAvatar(ctx, userID, key, url); err != nil {
		return nil, err
	}

	// Old object is unreachable once the row points elsewhere
	if profile.AvatarKey != "" && profile.AvatarKey != key {
		if err := s.Store.Delete(ctx, profile.AvatarKey); err != nil {
			s.Logger.Warn("failed to delete old avatar", zap.String("key", profile.AvatarKey), zap.Error(err))
		}
	}

	return s.Repo.GetProfile(ctx, userID)
}

// SearchProfiles lists the member directory with optional filters
func (s *ProfileService) SearchProfiles(ctx context.Context, department, location, term string) ([]*models.Profile, error) {
	return s.Repo.SearchProfiles(ctx, department, location, term)
}
