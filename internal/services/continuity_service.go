package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/storage"
)

var continuityCategories = map[string]bool{
	"props":    true,
	"wardrobe": true,
	"makeup":   true,
	"set":      true,
	"camera":   true,
	"other":    true,
}

type ContinuityService struct {
	Repo        *repositories.ContinuityRepository
	Productions *repositories.ProductionRepository
	Store       storage.Store
	Logger      *zap.Logger
}

func NewContinuityService(repo *repositories.ContinuityRepository, productions *repositories.ProductionRepository, store storage.Store, logger *zap.Logger) *ContinuityService {
	return &ContinuityService{Repo: repo, Productions: productions, Store: store, Logger: logger}
}

// CreateNote records a continuity note for a scene
func (s *ContinuityService) CreateNote(ctx context.Context, productionID, userID int, req *models.CreateContinuityNoteRequest) (*models.ContinuityNote, error) {
	if err := requireScripty(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	if req.SceneNumber == "" {
		return nil, errors.New("scene number is required")
	}
	if req.Body == "" {
		return nil, errors.New("note body is required")
	}
	category := req.Category
	if category == "" {
		category = "other"
	}
	if !continuityCategories[category] {
		return nil, errors.New("invalid continuity category")
	}
	note := &models.ContinuityNote{
		ProductionID: productionID,
		SceneNumber:  req.SceneNumber,
		Category:     category,
		Body:         req.Body,
		AuthorID:     userID,
	}
	if err := s.Repo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes retrieves notes filtered by scene and category
func (s *ContinuityService) ListNotes(ctx context.Context, productionID, userID int, sceneNumber, category string) ([]*models.ContinuityNote, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListNotes(ctx, productionID, sceneNumber, category)
}

// UpdateNote edits category or body
func (s *ContinuityService) UpdateNote(ctx context.Context, productionID, userID, noteID int, req *models.UpdateContinuityNoteRequest) (*models.ContinuityNote, error) {
	if err := requireScripty(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	note, err := s.Repo.GetNote(ctx, noteID)
	if err != nil || note.ProductionID != productionID {
		return nil, errors.New("note not found")
	}
	if req.Category != nil && !continuityCategories[*req.Category] {
		return nil, errors.New("invalid continuity category")
	}
	if err := s.Repo.UpdateNote(ctx, note.ID, req.Category, req.Body); err != nil {
		return nil, err
	}
	return s.Repo.GetNote(ctx, note.ID)
}

// DeleteNote removes a note
func (s *ContinuityService) DeleteNote(ctx context.Context, productionID, userID, noteID int) error {
	if err := requireScripty(ctx, s.Productions, productionID, userID); err != nil {
		return err
	}
	note, err := s.Repo.GetNote(ctx, noteID)
	if err != nil || note.ProductionID != productionID {
		return errors.New("note not found")
	}
	return s.Repo.DeleteNote(ctx, note.ID)
}

// UploadPhoto stores a continuity photo for a scene
func (s *ContinuityService) UploadPhoto(ctx context.Context, productionID, userID int, sceneNumber, caption, filename, contentType string, file io.Reader) (*models.ContinuityPhoto, error) {
	if err := requireScripty(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	if sceneNumber == "" {
		return nil, errors.New("scene number is required")
	}
	key := storage.MakeKey("continuity", filename)
	url, err := s.Store.Put(ctx, key, file, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}
	photo := &models.ContinuityPhoto{
		ProductionID: productionID,
		SceneNumber:  sceneNumber,
		Caption:      caption,
		StorageKey:   key,
		FileURL:      url,
		AuthorID:     userID,
	}
	if err := s.Repo.CreatePhoto(ctx, photo); err != nil {
		if delErr := s.Store.Delete(ctx, key); delErr != nil {
			s.Logger.Warn("failed to remove orphaned photo",
				zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}
	return photo, nil
}

// ListPhotos retrieves photos filtered by scene
func (s *ContinuityService) ListPhotos(ctx context.Context, productionID, userID int, sceneNumber string) ([]*models.ContinuityPhoto, error) {
	if _, err := requireMember(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListPhotos(ctx, productionID, sceneNumber)
}

// UpdatePhoto replaces a photo's caption
func (s *ContinuityService) UpdatePhoto(ctx context.Context, productionID, userID, photoID int, req *models.UpdateContinuityPhotoRequest) (*models.ContinuityPhoto, error) {
	if err := requireScripty(ctx, s.Productions, productionID, userID); err != nil {
		return nil, err
	}
	photo, err := s.Repo.GetPhoto(ctx, photoID)
	if err != nil || photo.ProductionID != productionID {
		return nil, errors.New("photo not found")
	}
	if err := s.Repo.UpdatePhotoCaption(ctx, photo.ID, req.Caption); err != nil {
		return nil, err
	}
	photo.Caption = req.Caption
	return photo, nil
}

// DeletePhoto removes the photo and its stored object
func (s *ContinuityService) DeletePhoto(ctx context.Context, productionID, userID, photoID int) error {
	if err := requireScripty(ctx, s.Productions, productionID, userID); err != nil {
		return err
	}
	photo, err := s.Repo.GetPhoto(ctx, photoID)
	if err != nil || photo.ProductionID != productionID {
		return errors.New("photo not found")
	}
	if err := s.Repo.DeletePhoto(ctx, photo.ID); err != nil {
		return err
	}
	if photo.StorageKey != "" {
		if err := s.Store.Delete(ctx, photo.StorageKey); err != nil {
			s.Logger.Warn("failed to delete photo file",
				zap.String("key", photo.StorageKey), zap.Error(err))
		}
	}
	return nil
}
