package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type RentalRepository struct {
	DB *pgxpool.Pool
}

func NewRentalRepository(db *pgxpool.Pool) *RentalRepository {
	return &RentalRepository{DB: db}
}

// CreateListing posts gear or a space to the rental marketplace
func (r *RentalRepository) CreateListing(ctx context.Context, listing *models.RentalListing) error {
	query := `
		INSERT INTO rental_listings (owner_id, title, category, description, daily_rate, deposit, location, photo_key, photo_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		listing.OwnerID, listing.Title, listing.Category, listing.Description,
		listing.DailyRate, listing.Deposit, listing.Location,
		listing.PhotoKey, listing.PhotoURL, listing.Status,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

// GetListing retrieves a rental listing by ID
func (r *RentalRepository) GetListing(ctx context.Context, id int) (*models.RentalListing, error) {
	query := `
		SELECT id, owner_id, title, category, description, daily_rate, deposit, location,
		       photo_key, photo_url, status, created_at, updated_at
		FROM rental_listings
		WHERE id = $1
	`
	listing := &models.RentalListing{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&listing.ID, &listing.OwnerID, &listing.Title, &listing.Category, &listing.Description,
		&listing.DailyRate, &listing.Deposit, &listing.Location,
		&listing.PhotoKey, &listing.PhotoURL, &listing.Status,
		&listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// ListListings retrieves marketplace listings filtered by category, location
// and free text; unlisted items only show for their owner via ListByOwner.
func (r *RentalRepository) ListListings(ctx context.Context, category, location, term string) ([]*models.RentalListing, error) {
	query := `
		SELECT id, owner_id, title, category, description, daily_rate, deposit, location,
		       photo_key, photo_url, status, created_at, updated_at
		FROM rental_listings
		WHERE status = 'listed'
		  AND ($1 = '' OR category = $1)
		  AND ($2 = '' OR location ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR title ILIKE '%' || $3 || '%' OR description ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, category, location, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*models.RentalListing
	for rows.Next() {
		listing := &models.RentalListing{}
		err := rows.Scan(
			&listing.ID, &listing.OwnerID, &listing.Title, &listing.Category, &listing.Description,
			&listing.DailyRate, &listing.Deposit, &listing.Location,
			&listing.PhotoKey, &listing.PhotoURL, &listing.Status,
			&listing.CreatedAt, &listing.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

// ListByOwner retrieves all of an owner's listings regardless of status
func (r *RentalRepository) ListByOwner(ctx context.Context, ownerID int) ([]*models.RentalListing, error) {
	query := `
		SELECT id, owner_id, title, category, description, daily_rate, deposit, location,
		       photo_key, photo_url, status, created_at, updated_at
		FROM rental_listings
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*models.RentalListing
	for rows.Next() {
		listing := &models.RentalListing{}
		err := rows.Scan(
			&listing.ID, &listing.OwnerID, &listing.Title, &listing.Category, &listing.Description,
			&listing.DailyRate, &listing.Deposit, &listing.Location,
			&listing.PhotoKey, &listing.PhotoURL, &listing.Status,
			&listing.CreatedAt, &listing.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

// UpdateListing applies a partial edit
func (r *RentalRepository) UpdateListing(ctx context.Context, id int, title, category, description *string, dailyRate, deposit *float64, location, status *string) error {
	query := `
		UPDATE rental_listings
		SET title = COALESCE($1, title),
		    category = COALESCE($2, category),
		    description = COALESCE($3, description),
		    daily_rate = COALESCE($4, daily_rate),
		    deposit = COALESCE($5, deposit),
		    location = COALESCE($6, location),
		    status = COALESCE($7, status),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
	`
	_, err := r.DB.Exec(ctx, query, title, category, description, dailyRate, deposit, location, status, id)
	return err
}

// UpdateListingPhoto stores the uploaded photo's storage key and public URL
func (r *RentalRepository) UpdateListingPhoto(ctx context.Context, id int, key, url string) error {
	query := `
		UPDATE rental_listings
		SET photo_key = $1, photo_url = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	_, err := r.DB.Exec(ctx, query, key, url, id)
	return err
}

// DeleteListing removes a rental listing
func (r *RentalRepository) DeleteListing(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM rental_listings WHERE id = $1`, id)
	return err
}

// HasOverlappingOrder checks for confirmed or in-payment orders whose date
// range intersects the requested one.
func (r *RentalRepository) HasOverlappingOrder(ctx context.Context, listingID int, startDate, endDate time.Time) (bool, error) {
	query := `
		SELECT COUNT(*) FROM rental_orders
		WHERE listing_id = $1
		  AND status IN ('pending_payment', 'confirmed')
		  AND start_date <= $3
		  AND end_date >= $2
	`
	var count int
	err := r.DB.QueryRow(ctx, query, listingID, startDate, endDate).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateOrder opens a rental order in pending_payment
func (r *RentalRepository) CreateOrder(ctx context.Context, order *models.RentalOrder) error {
	query := `
		INSERT INTO rental_orders (listing_id, renter_id, start_date, end_date, amount, status, razorpay_order_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		order.ListingID, order.RenterID, order.StartDate, order.EndDate,
		order.Amount, order.Status, order.RazorpayOrderID,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

// GetOrder retrieves a rental order by ID
func (r *RentalRepository) GetOrder(ctx context.Context, id int) (*models.RentalOrder, error) {
	query := `
		SELECT id, listing_id, renter_id, start_date, end_date, amount, status,
		       razorpay_order_id, razorpay_payment_id, created_at, updated_at
		FROM rental_orders
		WHERE id = $1
	`
	order := &models.RentalOrder{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.ListingID, &order.RenterID, &order.StartDate, &order.EndDate,
		&order.Amount, &order.Status,
		&order.RazorpayOrderID, &order.RazorpayPaymentID,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrderByRazorpayOrderID looks up the order a gateway webhook refers to
func (r *RentalRepository) GetOrderByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.RentalOrder, error) {
	query := `
		SELECT id, listing_id, renter_id, start_date, end_date, amount, status,
		       razorpay_order_id, razorpay_payment_id, created_at, updated_at
		FROM rental_orders
		WHERE razorpay_order_id = $1
	`
	order := &models.RentalOrder{}
	err := r.DB.QueryRow(ctx, query, razorpayOrderID).Scan(
		&order.ID, &order.ListingID, &order.RenterID, &order.StartDate, &order.EndDate,
		&order.Amount, &order.Status,
		&order.RazorpayOrderID, &order.RazorpayPaymentID,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrdersByRenter retrieves orders placed by the user
func (r *RentalRepository) ListOrdersByRenter(ctx context.Context, renterID int) ([]*models.RentalOrder, error) {
	query := `
		SELECT id, listing_id, renter_id, start_date, end_date, amount, status,
		       razorpay_order_id, razorpay_payment_id, created_at, updated_at
		FROM rental_orders
		WHERE renter_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, renterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.RentalOrder
	for rows.Next() {
		order := &models.RentalOrder{}
		err := rows.Scan(
			&order.ID, &order.ListingID, &order.RenterID, &order.StartDate, &order.EndDate,
			&order.Amount, &order.Status,
			&order.RazorpayOrderID, &order.RazorpayPaymentID,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// ListOrdersByOwner retrieves orders against the user's listings
func (r *RentalRepository) ListOrdersByOwner(ctx context.Context, ownerID int) ([]*models.RentalOrder, error) {
	query := `
		SELECT ro.id, ro.listing_id, ro.renter_id, ro.start_date, ro.end_date, ro.amount, ro.status,
		       ro.razorpay_order_id, ro.razorpay_payment_id, ro.created_at, ro.updated_at
		FROM rental_orders ro
		JOIN rental_listings rl ON rl.id = ro.listing_id
		WHERE rl.owner_id = $1
		ORDER BY ro.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.RentalOrder
	for rows.Next() {
		order := &models.RentalOrder{}
		err := rows.Scan(
			&order.ID, &order.ListingID, &order.RenterID, &order.StartDate, &order.EndDate,
			&order.Amount, &order.Status,
			&order.RazorpayOrderID, &order.RazorpayPaymentID,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// SetOrderStatus moves the order through its lifecycle
func (r *RentalRepository) SetOrderStatus(ctx context.Context, id int, status string) error {
	query := `
		UPDATE rental_orders
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	_, err := r.DB.Exec(ctx, query, status, id)
	return err
}

// ConfirmPayment records the gateway payment and confirms the order
func (r *RentalRepository) ConfirmPayment(ctx context.Context, id int, razorpayPaymentID string) error {
	query := `
		UPDATE rental_orders
		SET status = 'confirmed', razorpay_payment_id = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	_, err := r.DB.Exec(ctx, query, razorpayPaymentID, id)
	return err
}
