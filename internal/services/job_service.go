package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
)

type JobService struct {
	Repo          *repositories.JobRepository
	Notifications *NotificationService
	Logger        *zap.Logger
}

func NewJobService(repo *repositories.JobRepository, notifications *NotificationService, logger *zap.Logger) *JobService {
	return &JobService{Repo: repo, Notifications: notifications, Logger: logger}
}

// CreateListing posts a job to the board
func (s *JobService) CreateListing(ctx context.Context, posterID int, req *models.CreateJobListingRequest) (*models.JobListing, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.Department == "" {
		return nil, errors.New("department is required")
	}
	listing := &models.JobListing{
		PosterID:     posterID,
		ProductionID: req.ProductionID,
		Title:        req.Title,
		Department:   req.Department,
		Description:  req.Description,
		Location:     req.Location,
		Rate:         req.Rate,
		Status:       models.JobStatusOpen,
	}
	if err := s.Repo.CreateListing(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// GetListing retrieves one listing
func (s *JobService) GetListing(ctx context.Context, listingID int) (*models.JobListing, error) {
	return s.Repo.GetListing(ctx, listingID)
}

// ListListings browses the board with optional filters
func (s *JobService) ListListings(ctx context.Context, status, department, location, term string) ([]*models.JobListing, error) {
	if status == "" {
		status = models.JobStatusOpen
	}
	return s.Repo.ListListings(ctx, status, department, location, term)
}

// UpdateListing edits a listing (poster only)
func (s *JobService) UpdateListing(ctx context.Context, listingID, userID int, req *models.UpdateJobListingRequest) (*models.JobListing, error) {
	listing, err := s.Repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}
	if listing.PosterID != userID {
		return nil, ErrForbidden
	}
	if req.Status != nil {
		switch *req.Status {
		case models.JobStatusOpen, models.JobStatusClosed:
		default:
			return nil, errors.New("invalid listing status")
		}
	}
	err = s.Repo.UpdateListing(ctx, listingID,
		req.Title, req.Department, req.Description, req.Location, req.Rate, req.Status)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetListing(ctx, listingID)
}

// DeleteListing removes a listing (poster only)
func (s *JobService) DeleteListing(ctx context.Context, listingID, userID int) error {
	listing, err := s.Repo.GetListing(ctx, listingID)
	if err != nil {
		return errors.New("listing not found")
	}
	if listing.PosterID != userID {
		return ErrForbidden
	}
	return s.Repo.DeleteListing(ctx, listingID)
}

// Apply submits an application; one per listing per applicant
func (s *JobService) Apply(ctx context.Context, listingID, applicantID int, req *models.ApplyRequest) (*models.JobApplication, error) {
	listing, err := s.Repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}
	if listing.Status != models.JobStatusOpen {
		return nil, errors.New("listing is closed")
	}
	if listing.PosterID == applicantID {
		return nil, errors.New("cannot apply to your own listing")
	}
	applied, err := s.Repo.HasApplied(ctx, listingID, applicantID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, errors.New("already applied to this listing")
	}
	application := &models.JobApplication{
		ListingID:   listingID,
		ApplicantID: applicantID,
		Message:     req.Message,
		Status:      models.ApplicationStatusPending,
	}
	if err := s.Repo.CreateApplication(ctx, application); err != nil {
		return nil, err
	}
	s.Notifications.Notify(ctx, listing.PosterID, models.NotifyKindJobApplication,
		"New application",
		fmt.Sprintf("Someone applied to %q.", listing.Title),
		"job_listing", listing.ID)
	return application, nil
}

// ListApplications retrieves a listing's applications (poster only)
func (s *JobService) ListApplications(ctx context.Context, listingID, userID int) ([]*models.JobApplication, error) {
	listing, err := s.Repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}
	if listing.PosterID != userID {
		return nil, ErrForbidden
	}
	return s.Repo.ListApplicationsForListing(ctx, listingID)
}

// ListMyApplications retrieves the caller's applications across listings
func (s *JobService) ListMyApplications(ctx context.Context, applicantID int) ([]*models.JobApplication, error) {
	return s.Repo.ListApplicationsByApplicant(ctx, applicantID)
}

// Decide accepts or declines an application (poster only) and notifies the
// applicant
func (s *JobService) Decide(ctx context.Context, applicationID, userID int, status string) (*models.JobApplication, error) {
	switch status {
	case models.ApplicationStatusAccepted, models.ApplicationStatusDeclined:
	default:
		return nil, errors.New("invalid application status")
	}
	application, err := s.Repo.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, errors.New("application not found")
	}
	listing, err := s.Repo.GetListing(ctx, application.ListingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}
	if listing.PosterID != userID {
		return nil, ErrForbidden
	}
	if application.Status != models.ApplicationStatusPending {
		return nil, errors.New("application already decided")
	}
	if err := s.Repo.SetApplicationStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}

	title := "Application accepted"
	body := fmt.Sprintf("Your application to %q was accepted.", listing.Title)
	if status == models.ApplicationStatusDeclined {
		title = "Application declined"
		body = fmt.Sprintf("Your application to %q was declined.", listing.Title)
	}
	s.Notifications.Notify(ctx, application.ApplicantID, models.NotifyKindJobApplication,
		title, body, "job_listing", listing.ID)

	return s.Repo.GetApplication(ctx, applicationID)
}
