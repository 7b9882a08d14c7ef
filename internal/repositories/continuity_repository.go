package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type ContinuityRepository struct {
	DB *pgxpool.Pool
}

func NewContinuityRepository(db *pgxpool.Pool) *ContinuityRepository {
	return &ContinuityRepository{DB: db}
}

// CreateNote records a continuity observation
func (r *ContinuityRepository) CreateNote(ctx context.Context, note *models.ContinuityNote) error {
	query := `
		INSERT INTO continuity_notes (production_id, scene_number, category, body, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		note.ProductionID, note.SceneNumber, note.Category, note.Body, note.AuthorID,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
}

// GetNote retrieves a continuity note by ID
func (r *ContinuityRepository) GetNote(ctx context.Context, id int) (*models.ContinuityNote, error) {
	query := `
		SELECT id, production_id, scene_number, category, body, author_id, created_at, updated_at
		FROM continuity_notes
		WHERE id = $1
	`
	note := &models.ContinuityNote{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&note.ID, &note.ProductionID, &note.SceneNumber, &note.Category,
		&note.Body, &note.AuthorID, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes retrieves notes for a production, optionally filtered by scene
// and category
func (r *ContinuityRepository) ListNotes(ctx context.Context, productionID int, sceneNumber, category string) ([]*models.ContinuityNote, error) {
	query := `
		SELECT id, production_id, scene_number, category, body, author_id, created_at, updated_at
		FROM continuity_notes
		WHERE production_id = $1
		  AND ($2 = '' OR scene_number = $2)
		  AND ($3 = '' OR category = $3)
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, productionID, sceneNumber, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.ContinuityNote
	for rows.Next() {
		note := &models.ContinuityNote{}
		err := rows.Scan(
			&note.ID, &note.ProductionID, &note.SceneNumber, &note.Category,
			&note.Body, &note.AuthorID, &note.CreatedAt, &note.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// UpdateNote applies a partial edit to category and body
func (r *ContinuityRepository) UpdateNote(ctx context.Context, id int, category, body *string) error {
	query := `
		UPDATE continuity_notes
		SET category = COALESCE($1, category),
		    body = COALESCE($2, body),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	_, err := r.DB.Exec(ctx, query, category, body, id)
	return err
}

// DeleteNote removes a continuity note
func (r *ContinuityRepository) DeleteNote(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM continuity_notes WHERE id = $1`, id)
	return err
}

// CreatePhoto records an uploaded continuity photo
func (r *ContinuityRepository) CreatePhoto(ctx context.Context, photo *models.ContinuityPhoto) error {
	query := `
		INSERT INTO continuity_photos (production_id, scene_number, caption, storage_key, file_url, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		photo.ProductionID, photo.SceneNumber, photo.Caption,
		photo.StorageKey, photo.FileURL, photo.AuthorID,
	).Scan(&photo.ID, &photo.CreatedAt)
}

// GetPhoto retrieves a continuity photo by ID
func (r *ContinuityRepository) GetPhoto(ctx context.Context, id int) (*models.ContinuityPhoto, error) {
	query := `
		SELECT id, production_id, scene_number, caption, storage_key, file_url, author_id, created_at
		FROM continuity_photos
		WHERE id = $1
	`
	photo := &models.ContinuityPhoto{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&photo.ID, &photo.ProductionID, &photo.SceneNumber, &photo.Caption,
		&photo.StorageKey, &photo.FileURL, &photo.AuthorID, &photo.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return photo, nil
}

// ListPhotos retrieves photos for a production, optionally filtered by scene
func (r *ContinuityRepository) ListPhotos(ctx context.Context, productionID int, sceneNumber string) ([]*models.ContinuityPhoto, error) {
	query := `
		SELECT id, production_id, scene_number, caption, storage_key, file_url, author_id, created_at
		FROM continuity_photos
		WHERE production_id = $1
		  AND ($2 = '' OR scene_number = $2)
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, productionID, sceneNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*models.ContinuityPhoto
	for rows.Next() {
		photo := &models.ContinuityPhoto{}
		err := rows.Scan(
			&photo.ID, &photo.ProductionID, &photo.SceneNumber, &photo.Caption,
			&photo.StorageKey, &photo.FileURL, &photo.AuthorID, &photo.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

// UpdatePhotoCaption replaces a photo's caption
func (r *ContinuityRepository) UpdatePhotoCaption(ctx context.Context, id int, caption string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE continuity_photos SET caption = $1 WHERE id = $2`, caption, id)
	return err
}

// DeletePhoto removes a continuity photo row
func (r *ContinuityRepository) DeletePhoto(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM continuity_photos WHERE id = $1`, id)
	return err
}
