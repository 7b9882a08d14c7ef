package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type JobRepository struct {
	DB *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{DB: db}
}

// CreateListing posts a job to the board
func (r *JobRepository) CreateListing(ctx context.Context, listing *models.JobListing) error {
	query := `
		INSERT INTO job_listings (poster_id, production_id, title, department, description, location, rate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		listing.PosterID, listing.ProductionID, listing.Title, listing.Department,
		listing.Description, listing.Location, listing.Rate, listing.Status,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

// GetListing retrieves a job listing by ID
func (r *JobRepository) GetListing(ctx context.Context, id int) (*models.JobListing, error) {
	query := `
		SELECT id, poster_id, production_id, title, department, description, location, rate, status,
		       created_at, updated_at
		FROM job_listings
		WHERE id = $1
	`
	listing := &models.JobListing{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&listing.ID, &listing.PosterID, &listing.ProductionID, &listing.Title,
		&listing.Department, &listing.Description, &listing.Location, &listing.Rate,
		&listing.Status, &listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// ListListings retrieves listings filtered by status, department, location
// and a free text term. Empty filters match all.
func (r *JobRepository) ListListings(ctx context.Context, status, department, location, term string) ([]*models.JobListing, error) {
	query := `
		SELECT id, poster_id, production_id, title, department, description, location, rate, status,
		       created_at, updated_at
		FROM job_listings
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR department = $2)
		  AND ($3 = '' OR location ILIKE '%' || $3 || '%')
		  AND ($4 = '' OR title ILIKE '%' || $4 || '%' OR description ILIKE '%' || $4 || '%')
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, status, department, location, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*models.JobListing
	for rows.Next() {
		listing := &models.JobListing{}
		err := rows.Scan(
			&listing.ID, &listing.PosterID, &listing.ProductionID, &listing.Title,
			&listing.Department, &listing.Description, &listing.Location, &listing.Rate,
			&listing.Status, &listing.CreatedAt, &listing.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

// UpdateListing applies a partial edit
func (r *JobRepository) UpdateListing(ctx context.Context, id int, title, department, description, location, rate, status *string) error {
	query := `
		UPDATE job_listings
		SET title = COALESCE($1, title),
		    department = COALESCE($2, department),
		    description = COALESCE($3, description),
		    location = COALESCE($4, location),
		    rate = COALESCE($5, rate),
		    status = COALESCE($6, status),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
	`
	_, err := r.DB.Exec(ctx, query, title, department, description, location, rate, status, id)
	return err
}

// DeleteListing removes a job listing and its applications
func (r *JobRepository) DeleteListing(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM job_listings WHERE id = $1`, id)
	return err
}

// CreateApplication records an application. The unique constraint on
// (listing_id, applicant_id) rejects duplicates.
func (r *JobRepository) CreateApplication(ctx context.Context, application *models.JobApplication) error {
	query := `
		INSERT INTO job_applications (listing_id, applicant_id, message, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		application.ListingID, application.ApplicantID, application.Message, application.Status,
	).Scan(&application.ID, &application.CreatedAt, &application.UpdatedAt)
}

// HasApplied checks whether the user already applied to the listing
func (r *JobRepository) HasApplied(ctx context.Context, listingID, applicantID int) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_applications WHERE listing_id = $1 AND applicant_id = $2`,
		listingID, applicantID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetApplication retrieves an application by ID
func (r *JobRepository) GetApplication(ctx context.Context, id int) (*models.JobApplication, error) {
	query := `
		SELECT ja.id, ja.listing_id, ja.applicant_id, u.name, ja.message, ja.status,
		       ja.created_at, ja.updated_at
		FROM job_applications ja
		JOIN users u ON u.id = ja.applicant_id
		WHERE ja.id = $1
	`
	application := &models.JobApplication{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&application.ID, &application.ListingID, &application.ApplicantID,
		&application.ApplicantName, &application.Message, &application.Status,
		&application.CreatedAt, &application.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return application, nil
}

// ListApplicationsForListing retrieves applications with applicant names
func (r *JobRepository) ListApplicationsForListing(ctx context.Context, listingID int) ([]*models.JobApplication, error) {
	query := `
		SELECT ja.id, ja.listing_id, ja.applicant_id, u.name, ja.message, ja.status,
		       ja.created_at, ja.updated_at
		FROM job_applications ja
		JOIN users u ON u.id = ja.applicant_id
		WHERE ja.listing_id = $1
		ORDER BY ja.created_at ASC
	`
	rows, err := r.DB.Query(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []*models.JobApplication
	for rows.Next() {
		application := &models.JobApplication{}
		err := rows.Scan(
			&application.ID, &application.ListingID, &application.ApplicantID,
			&application.ApplicantName, &application.Message, &application.Status,
			&application.CreatedAt, &application.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}
	return applications, rows.Err()
}

// ListApplicationsByApplicant retrieves a user's own applications
func (r *JobRepository) ListApplicationsByApplicant(ctx context.Context, applicantID int) ([]*models.JobApplication, error) {
	query := `
		SELECT ja.id, ja.listing_id, ja.applicant_id, u.name, ja.message, ja.status,
		       ja.created_at, ja.updated_at
		FROM job_applications ja
		JOIN users u ON u.id = ja.applicant_id
		WHERE ja.applicant_id = $1
		ORDER BY ja.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []*models.JobApplication
	for rows.Next() {
		application := &models.JobApplication{}
		err := rows.Scan(
			&application.ID, &application.ListingID, &application.ApplicantID,
			&application.ApplicantName, &application.Message, &application.Status,
			&application.CreatedAt, &application.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}
	return applications, rows.Err()
}

// SetApplicationStatus records the poster's decision
func (r *JobRepository) SetApplicationStatus(ctx context.Context, id int, status string) error {
	query := `
		UPDATE job_applications
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	_, err := r.DB.Exec(ctx, query, status, id)
	return err
}
