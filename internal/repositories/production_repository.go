package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type ProductionRepository struct {
	DB *pgxpool.Pool
}

func NewProductionRepository(db *pgxpool.Pool) *ProductionRepository {
	return &ProductionRepository{DB: db}
}

// CreateProduction inserts a production and enrolls the owner as a member
// in one transaction.
func (r *ProductionRepository) CreateProduction(ctx context.Context, production *models.Production) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO productions (title, company, status, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		production.Title, production.Company, production.Status, production.OwnerID,
	).Scan(&production.ID, &production.CreatedAt, &production.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO production_members (production_id, user_id, role) VALUES ($1, $2, $3)`,
		production.ID, production.OwnerID, models.MemberRoleOwner)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetProduction retrieves a production by ID
func (r *ProductionRepository) GetProduction(ctx context.Context, id int) (*models.Production, error) {
	query := `
		SELECT id, title, company, status, owner_id, created_at, updated_at
		FROM productions
		WHERE id = $1
	`
	production := &models.Production{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&production.ID, &production.Title, &production.Company, &production.Status,
		&production.OwnerID, &production.CreatedAt, &production.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return production, nil
}

// ListProductionsForUser retrieves productions where the user is a member
func (r *ProductionRepository) ListProductionsForUser(ctx context.Context, userID int) ([]*models.Production, error) {
	query := `
		SELECT p.id, p.title, p.company, p.status, p.owner_id, p.created_at, p.updated_at
		FROM productions p
		JOIN production_members pm ON pm.production_id = p.id
		WHERE pm.user_id = $1
		ORDER BY p.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var productions []*models.Production
	for rows.Next() {
		production := &models.Production{}
		err := rows.Scan(
			&production.ID, &production.Title, &production.Company, &production.Status,
			&production.OwnerID, &production.CreatedAt, &production.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		productions = append(productions, production)
	}
	return productions, rows.Err()
}

// UpdateProduction updates title, company and status
func (r *ProductionRepository) UpdateProduction(ctx context.Context, id int, title, company, status string) error {
	query := `
		UPDATE productions
		SET title = $1, company = $2, status = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`
	_, err := r.DB.Exec(ctx, query, title, company, status, id)
	return err
}

// DeleteProduction removes a production and its dependent rows via cascade
func (r *ProductionRepository) DeleteProduction(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM productions WHERE id = $1`, id)
	return err
}

// AddMember enrolls a user; re-adding updates the role instead of failing
func (r *ProductionRepository) AddMember(ctx context.Context, productionID, userID int, role string) error {
	query := `
		INSERT INTO production_members (production_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (production_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`
	_, err := r.DB.Exec(ctx, query, productionID, userID, role)
	return err
}

// RemoveMember drops a user from the production roster
func (r *ProductionRepository) RemoveMember(ctx context.Context, productionID, userID int) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM production_members WHERE production_id = $1 AND user_id = $2`,
		productionID, userID)
	return err
}

// GetMemberRole returns the user's role on the production, or "" if not a member
func (r *ProductionRepository) GetMemberRole(ctx context.Context, productionID, userID int) (string, error) {
	query := `
		SELECT COALESCE(
			(SELECT role FROM production_members WHERE production_id = $1 AND user_id = $2), '')
	`
	var role string
	err := r.DB.QueryRow(ctx, query, productionID, userID).Scan(&role)
	if err != nil {
		return "", err
	}
	return role, nil
}

// ListMembers retrieves the roster with user names and emails
func (r *ProductionRepository) ListMembers(ctx context.Context, productionID int) ([]*models.ProductionMember, error) {
	query := `
		SELECT pm.id, pm.production_id, pm.user_id, pm.role, u.name, u.email, pm.created_at
		FROM production_members pm
		JOIN users u ON u.id = pm.user_id
		WHERE pm.production_id = $1
		ORDER BY pm.created_at ASC
	`
	rows, err := r.DB.Query(ctx, query, productionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.ProductionMember
	for rows.Next() {
		member := &models.ProductionMember{}
		err := rows.Scan(
			&member.ID, &member.ProductionID, &member.UserID, &member.Role,
			&member.UserName, &member.UserEmail, &member.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

// CreateShootDay adds a shoot day to the schedule
func (r *ProductionRepository) CreateShootDay(ctx context.Context, day *models.ShootDay) error {
	query := `
		INSERT INTO shoot_days (production_id, day_number, shoot_date, location)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		day.ProductionID, day.DayNumber, day.ShootDate, day.Location,
	).Scan(&day.ID, &day.CreatedAt)
}

// ListShootDays retrieves the schedule ordered by day number
func (r *ProductionRepository) ListShootDays(ctx context.Context, productionID int) ([]*models.ShootDay, error) {
	query := `
		SELECT id, production_id, day_number, shoot_date, location, created_at
		FROM shoot_days
		WHERE production_id = $1
		ORDER BY day_number ASC
	`
	rows, err := r.DB.Query(ctx, query, productionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []*models.ShootDay
	for rows.Next() {
		day := &models.ShootDay{}
		err := rows.Scan(&day.ID, &day.ProductionID, &day.DayNumber, &day.ShootDate, &day.Location, &day.CreatedAt)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// UpdateShootDay rewrites a shoot day's fields. Returns pgx.ErrNoRows when
// the day does not belong to the production.
func (r *ProductionRepository) UpdateShootDay(ctx context.Context, day *models.ShootDay) error {
	query := `
		UPDATE shoot_days
		SET day_number = $1, shoot_date = $2, location = $3
		WHERE id = $4 AND production_id = $5
		RETURNING created_at
	`
	return r.DB.QueryRow(ctx, query,
		day.DayNumber, day.ShootDate, day.Location, day.ID, day.ProductionID,
	).Scan(&day.CreatedAt)
}

// DeleteShootDay removes a shoot day
func (r *ProductionRepository) DeleteShootDay(ctx context.Context, productionID, dayID int) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM shoot_days WHERE id = $1 AND production_id = $2`, dayID, productionID)
	return err
}

// CreateScene adds a scene to the breakdown
func (r *ProductionRepository) CreateScene(ctx context.Context, scene *models.Scene) error {
	query := `
		INSERT INTO scenes (production_id, scene_number, description, page_eighths)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		scene.ProductionID, scene.SceneNumber, scene.Description, scene.PageEighths,
	).Scan(&scene.ID, &scene.CreatedAt)
}

// ListScenes retrieves the scene breakdown
func (r *ProductionRepository) ListScenes(ctx context.Context, productionID int) ([]*models.Scene, error) {
	query := `
		SELECT id, production_id, scene_number, description, page_eighths, created_at
		FROM scenes
		WHERE production_id = $1
		ORDER BY scene_number ASC
	`
	rows, err := r.DB.Query(ctx, query, productionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenes []*models.Scene
	for rows.Next() {
		scene := &models.Scene{}
		err := rows.Scan(&scene.ID, &scene.ProductionID, &scene.SceneNumber, &scene.Description, &scene.PageEighths, &scene.CreatedAt)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, scene)
	}
	return scenes, rows.Err()
}

// UpdateScene rewrites a scene's fields. Returns pgx.ErrNoRows when the
// scene does not belong to the production.
func (r *ProductionRepository) UpdateScene(ctx context.Context, scene *models.Scene) error {
	query := `
		UPDATE scenes
		SET scene_number = $1, description = $2, page_eighths = $3
		WHERE id = $4 AND production_id = $5
		RETURNING created_at
	`
	return r.DB.QueryRow(ctx, query,
		scene.SceneNumber, scene.Description, scene.PageEighths, scene.ID, scene.ProductionID,
	).Scan(&scene.CreatedAt)
}

// DeleteScene removes a scene
func (r *ProductionRepository) DeleteScene(ctx context.Context, productionID, sceneID int) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM scenes WHERE id = $1 AND production_id = $2`, sceneID, productionID)
	return err
}

// CreateBudgetLine adds a line to the production budget
func (r *ProductionRepository) CreateBudgetLine(ctx context.Context, line *models.BudgetLine) error {
	query := `
		INSERT INTO budget_lines (production_id, code, category, description, estimated_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		line.ProductionID, line.Code, line.Category, line.Description, line.EstimatedAmount,
	).Scan(&line.ID, &line.CreatedAt)
}

// GetBudgetLine retrieves a single budget line
func (r *ProductionRepository) GetBudgetLine(ctx context.Context, id int) (*models.BudgetLine, error) {
	query := `
		SELECT id, production_id, code, category, description, estimated_amount, created_at
		FROM budget_lines
		WHERE id = $1
	`
	line := &models.BudgetLine{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&line.ID, &line.ProductionID, &line.Code, &line.Category,
		&line.Description, &line.EstimatedAmount, &line.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return line, nil
}

// ListBudgetLinesWithActuals retrieves budget lines with actual spend summed
// from mapped verified receipts. Actuals are recomputed on every call.
func (r *ProductionRepository) ListBudgetLinesWithActuals(ctx context.Context, productionID int) ([]*models.BudgetLineWithActuals, error) {
	query := `
		SELECT bl.id, bl.production_id, bl.code, bl.category, bl.description,
		       bl.estimated_amount, bl.created_at,
		       COALESCE(SUM(rc.amount) FILTER (WHERE rc.verified), 0) AS actual_amount,
		       COUNT(rc.id) FILTER (WHERE rc.verified) AS receipt_count
		FROM budget_lines bl
		LEFT JOIN receipts rc ON rc.budget_line_id = bl.id
		WHERE bl.production_id = $1
		GROUP BY bl.id
		ORDER BY bl.code ASC
	`
	rows, err := r.DB.Query(ctx, query, productionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.BudgetLineWithActuals
	for rows.Next() {
		line := &models.BudgetLineWithActuals{}
		err := rows.Scan(
			&line.ID, &line.ProductionID, &line.Code, &line.Category, &line.Description,
			&line.EstimatedAmount, &line.CreatedAt,
			&line.ActualAmount, &line.ReceiptCount,
		)
		if err != nil {
			return nil, err
		}
		line.Variance = line.EstimatedAmount - line.ActualAmount
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// UpdateBudgetLine rewrites a budget line's fields. Returns pgx.ErrNoRows
// when the line does not belong to the production.
func (r *ProductionRepository) UpdateBudgetLine(ctx context.Context, line *models.BudgetLine) error {
	query := `
		UPDATE budget_lines
		SET code = $1, category = $2, description = $3, estimated_amount = $4
		WHERE id = $5 AND production_id = $6
		RETURNING created_at
	`
	return r.DB.QueryRow(ctx, query,
		line.Code, line.Category, line.Description, line.EstimatedAmount, line.ID, line.ProductionID,
	).Scan(&line.CreatedAt)
}

// DeleteBudgetLine removes a budget line; mapped receipts keep their data
// with the reference cleared.
func (r *ProductionRepository) DeleteBudgetLine(ctx context.Context, productionID, lineID int) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM budget_lines WHERE id = $1 AND production_id = $2`, lineID, productionID)
	return err
}
