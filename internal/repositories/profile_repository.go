package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type ProfileRepository struct {
	DB *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// EnsureProfile creates an empty profile row for a new user if none exists
func (r *ProfileRepository) EnsureProfile(ctx context.Context, userID int, displayName string) error {
	query := `
		INSERT INTO profiles (user_id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.DB.Exec(ctx, query, userID, displayName)
	return err
}

// GetProfile retrieves a profile by user ID
func (r *ProfileRepository) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	query := `
		SELECT user_id, display_name, headline, bio, department, location, credits,
		       avatar_key, avatar_url, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	profile := &models.Profile{}
	var creditsJSON []byte
	err := r.DB.QueryRow(ctx, query, userID).Scan(
		&profile.UserID, &profile.DisplayName, &profile.Headline, &profile.Bio,
		&profile.Department, &profile.Location, &creditsJSON,
		&profile.AvatarKey, &profile.AvatarURL, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(creditsJSON, &profile.Credits); err != nil {
		return nil, fmt.Errorf("failed to decode credits: %w", err)
	}
	return profile, nil
}

// UpdateProfile replaces the editable profile fields
func (r *ProfileRepository) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) error {
	credits := req.Credits
	if credits == nil {
		credits = []models.Credit{}
	}
	creditsJSON, err := json.Marshal(credits)
	if err != nil {
		return fmt.Errorf("failed to encode credits: %w", err)
	}

	query := `
		UPDATE profiles
		SET display_name = $1, headline = $2, bio = $3, department = $4, location = $5,
		    credits = $6, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $7
	`
	_, err = r.DB.Exec(ctx, query,
		req.DisplayName, req.Headline, req.Bio, req.Department, req.Location,
		creditsJSON, userID)
	return err
}

// UpdateAvatar stores the uploaded avatar's storage key and public URL
func (r *ProfileRepository) UpdateAvatar(ctx context.Context, userID int, key, url string) error {
	query := `
		UPDATE profiles
		SET avatar_key = $1, avatar_url = $2, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $3
	`
	_, err := r.DB.Exec(ctx, query, key, url, userID)
	return err
}

// SearchProfiles lists profiles filtered by department, location and a free
// text term matched against name, headline and bio.
func (r *ProfileRepository) SearchProfiles(ctx context.Context, department, location, term string) ([]*models.Profile, error) {
	query := `
		SELECT user_id, display_name, headline, bio, department, location, credits,
		       avatar_key, avatar_url, updated_at
		FROM profiles
		WHERE ($1 = '' OR department = $1)
		  AND ($2 = '' OR location ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR display_name ILIKE '%' || $3 || '%'
		       OR headline ILIKE '%' || $3 || '%'
		       OR bio ILIKE '%' || $3 || '%')
		ORDER BY display_name ASC
	`
	rows, err := r.DB.Query(ctx, query, department, location, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		profile := &models.Profile{}
		var creditsJSON []byte
		err := rows.Scan(
			&profile.UserID, &profile.DisplayName, &profile.Headline, &profile.Bio,
			&profile.Department, &profile.Location, &creditsJSON,
			&profile.AvatarKey, &profile.AvatarURL, &profile.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(creditsJSON, &profile.Credits); err != nil {
			return nil, fmt.Errorf("failed to decode credits: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
