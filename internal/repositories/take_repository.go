package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type TakeRepository struct {
	DB *pgxpool.Pool
}

func NewTakeRepository(db *pgxpool.Pool) *TakeRepository {
	return &TakeRepository{DB: db}
}

// CreateTake logs a take. When take_number is 0 the next number for the scene
// is assigned inside the statement, max(existing)+1 or 1.
func (r *TakeRepository) CreateTake(ctx context.Context, take *models.Take) error {
	query := `
		INSERT INTO takes (
			production_id, shoot_day_id, scene_number, take_number,
			status, camera, setup, timecode, notes, logged_by
		) VALUES (
			$1, $2, $3,
			CASE WHEN $4 > 0 THEN $4 ELSE (
				SELECT COALESCE(MAX(take_number), 0) + 1 FROM takes
				WHERE production_id = $1 AND scene_number = $3
			) END,
			$5, $6, $7, $8, $9, $10
		)
		RETURNING id, take_number, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		take.ProductionID, take.ShootDayID, take.SceneNumber, take.TakeNumber,
		take.Status, take.Camera, take.Setup, take.Timecode, take.Notes, take.LoggedBy,
	).Scan(&take.ID, &take.TakeNumber, &take.CreatedAt, &take.UpdatedAt)
}

// GetTake retrieves a take by ID
func (r *TakeRepository) GetTake(ctx context.Context, id int) (*models.Take, error) {
	query := `
		SELECT id, production_id, shoot_day_id, scene_number, take_number,
		       status, camera, setup, timecode, notes, logged_by, created_at, updated_at
		FROM takes
		WHERE id = $1
	`
	take := &models.Take{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&take.ID, &take.ProductionID, &take.ShootDayID, &take.SceneNumber, &take.TakeNumber,
		&take.Status, &take.Camera, &take.Setup, &take.Timecode, &take.Notes,
		&take.LoggedBy, &take.CreatedAt, &take.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return take, nil
}

// ListTakes retrieves takes for a production, optionally narrowed to one
// scene or one shoot day. Zero/empty filters match all.
func (r *TakeRepository) ListTakes(ctx context.Context, productionID int, sceneNumber string, shootDayID int) ([]*models.Take, error) {
	query := `
		SELECT id, production_id, shoot_day_id, scene_number, take_number,
		       status, camera, setup, timecode, notes, logged_by, created_at, updated_at
		FROM takes
		WHERE production_id = $1
		  AND ($2 = '' OR scene_number = $2)
		  AND ($3 = 0 OR shoot_day_id = $3)
		ORDER BY scene_number ASC, take_number ASC
	`
	rows, err := r.DB.Query(ctx, query, productionID, sceneNumber, shootDayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var takes []*models.Take
	for rows.Next() {
		take := &models.Take{}
		err := rows.Scan(
			&take.ID, &take.ProductionID, &take.ShootDayID, &take.SceneNumber, &take.TakeNumber,
			&take.Status, &take.Camera, &take.Setup, &take.Timecode, &take.Notes,
			&take.LoggedBy, &take.CreatedAt, &take.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		takes = append(takes, take)
	}
	return takes, rows.Err()
}

// NextTakeNumber returns max(take_number)+1 for the scene, 1 when empty
func (r *TakeRepository) NextTakeNumber(ctx context.Context, productionID int, sceneNumber string) (int, error) {
	query := `
		SELECT COALESCE(MAX(take_number), 0) + 1
		FROM takes
		WHERE production_id = $1 AND scene_number = $2
	`
	var next int
	err := r.DB.QueryRow(ctx, query, productionID, sceneNumber).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

// UpdateTake applies a partial edit to status, camera, setup, timecode, notes
func (r *TakeRepository) UpdateTake(ctx context.Context, id int, status, camera, setup, timecode, notes *string) error {
	query := `
		UPDATE takes
		SET status = COALESCE($1, status),
		    camera = COALESCE($2, camera),
		    setup = COALESCE($3, setup),
		    timecode = COALESCE($4, timecode),
		    notes = COALESCE($5, notes),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
	`
	_, err := r.DB.Exec(ctx, query, status, camera, setup, timecode, notes, id)
	return err
}

// DeleteTake removes a logged take
func (r *TakeRepository) DeleteTake(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM takes WHERE id = $1`, id)
	return err
}

// SceneSummary aggregates logged takes per scene: total count and how many
// carry the print or circled marks.
func (r *TakeRepository) SceneSummary(ctx context.Context, productionID int) ([]map[string]interface{}, error) {
	query := `
		SELECT scene_number,
		       COUNT(*) AS take_count,
		       COUNT(*) FILTER (WHERE status IN ('print', 'circled')) AS printed,
		       MAX(take_number) AS last_take
		FROM takes
		WHERE production_id = $1
		GROUP BY scene_number
		ORDER BY scene_number ASC
	`
	rows, err := r.DB.Query(ctx, query, productionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []map[string]interface{}
	for rows.Next() {
		var sceneNumber string
		var takeCount, printed, lastTake int
		if err := rows.Scan(&sceneNumber, &takeCount, &printed, &lastTake); err != nil {
			return nil, err
		}
		summaries = append(summaries, map[string]interface{}{
			"scene_number": sceneNumber,
			"take_count":   takeCount,
			"printed":      printed,
			"last_take":    lastTake,
		})
	}
	return summaries, rows.Err()
}
