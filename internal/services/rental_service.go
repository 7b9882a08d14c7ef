package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/storage"
)

var rentalCategories = map[string]bool{
	"camera":   true,
	"lens":     true,
	"lighting": true,
	"grip":     true,
	"sound":    true,
	"space":    true,
	"other":    true,
}

type RentalService struct {
	Repo          *repositories.RentalRepository
	Settings      *repositories.SystemSettingRepository
	Store         storage.Store
	Notifications *NotificationService
	Logger        *zap.Logger
	// Fallback credentials from environment (used if DB credentials not set)
	envKeyID         string
	envKeySecret     string
	envWebhookSecret string
}

func NewRentalService(
	keyID, keySecret, webhookSecret string,
	repo *repositories.RentalRepository,
	settings *repositories.SystemSettingRepository,
	store storage.Store,
	notifications *NotificationService,
	logger *zap.Logger,
) *RentalService {
	return &RentalService{
		Repo:             repo,
		Settings:         settings,
		Store:            store,
		Notifications:    notifications,
		Logger:           logger,
		envKeyID:         keyID,
		envKeySecret:     keySecret,
		envWebhookSecret: webhookSecret,
	}
}

// getCredentials returns the Razorpay credentials (from DB first, then env fallback)
func (s *RentalService) getCredentials(ctx context.Context) (keyID, keySecret, webhookSecret string) {
	if setting, err := s.Settings.Get(ctx, "razorpay_key_id"); err == nil && setting.SettingValue != "" {
		keyID = setting.SettingValue
	}
	if setting, err := s.Settings.Get(ctx, "razorpay_key_secret"); err == nil && setting.SettingValue != "" {
		keySecret = setting.SettingValue
	}
	if setting, err := s.Settings.Get(ctx, "razorpay_webhook_secret"); err == nil && setting.SettingValue != "" {
		webhookSecret = setting.SettingValue
	}
	if keyID == "" {
		keyID = s.envKeyID
	}
	if keySecret == "" {
		keySecret = s.envKeySecret
	}
	if webhookSecret == "" {
		webhookSecret = s.envWebhookSecret
	}
	return keyID, keySecret, webhookSecret
}

func (s *RentalService) getClient(ctx context.Context) *razorpay.Client {
	keyID, keySecret, _ := s.getCredentials(ctx)
	if keyID == "" || keySecret == "" {
		return nil
	}
	return razorpay.NewClient(keyID, keySecret)
}

// CreateListing publishes gear or a space for rent
func (s *RentalService) CreateListing(ctx context.Context, ownerID int, req *models.CreateRentalListingRequest) (*models.RentalListing, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	if !rentalCategories[req.Category] {
		return nil, errors.New("invalid listing category")
	}
	if req.DailyRate <= 0 {
		return nil, errors.New("daily rate must be positive")
	}
	if req.Deposit < 0 {
		return nil, errors.New("deposit cannot be negative")
	}
	listing := &models.RentalListing{
		OwnerID:     ownerID,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		DailyRate:   req.DailyRate,
		Deposit:     req.Deposit,
		Location:    req.Location,
		Status:      models.ListingStatusListed,
	}
	if err := s.Repo.CreateListing(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// GetListing retrieves a listing; unlisted ones only for their owner
func (s *RentalService) GetListing(ctx context.Context, listingID, userID int) (*models.RentalListing, error) {
	listing, err := s.Repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}
	if listing.Status != models.ListingStatusListed && listing.OwnerID != userID {
		return nil, errors.New("listing not found")
	}
	return listing, nil
}

// ListListings browses the marketplace with optional filters
func (s *RentalService) ListListings(ctx context.Context, category, location, term string) ([]*models.RentalListing, error) {
	if category != "" && !rentalCategories[category] {
		return nil, errors.New("invalid listing category")
	}
	return s.Repo.ListListings(ctx, category, location, term)
}

// ListMyListings retrieves the caller's listings including unlisted ones
func (s *RentalService) ListMyListings(ctx context.Context, ownerID int) ([]*models.RentalListing, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// UpdateListing edits a listing (owner only)
func (s *RentalService) UpdateListing(ctx context.Context, listingID, userID int, req *models.UpdateRentalListingRequest) (*models.RentalListing, error) {
	listing, err := s.Repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}
	if listing.OwnerID != userID {
		return nil, ErrForbidden
	}
	if req.Category != nil && !rentalCategories[*req.Category] {
		return nil, errors.New("invalid listing category")
	}
	if req.DailyRate != nil && *req.DailyRate <= 0 {
		return nil, errors.New("daily rate must be positive")
	}
	if req.Status != nil {
		switch *req.Status {
		case models.ListingStatusListed, models.ListingStatusUnlisted:
		default:
			return nil, errors.New("invalid listing status")
		}
	}
	err = s.Repo.UpdateListing(ctx, listingID,
		req.Title, req.Category, req.Description, req.DailyRate, req.Deposit,
		req.Location, req.Status)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetListing(ctx, listingID)
}

// UploadListingPhoto stores the listing photo, replacing any previous one
func (s *RentalService) UploadListingPhoto(ctx context.Context, listingID, userID int, filename, contentType string, file io.Reader) (*models.RentalListing, error) {
	listing, err := s.Repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}
	if listing.OwnerID != userID {
		return nil, ErrForbidden
	}
	key := storage.MakeKey("rentals", filename)
	url, err := s.Store.Put(ctx, key, file, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}
	if err := s.Repo.UpdateListingPhoto(ctx, listingID, key, url); err != nil {
		return nil, err
	}
	if listing.PhotoKey != "" {
		if err := s.Store.Delete(ctx, listing.PhotoKey); err != nil {
			s.Logger.Warn("failed to delete old listing photo",
				zap.String("key", listing.PhotoKey), zap.Error(err))
		}
	}
	return s.Repo.GetListing(ctx, listingID)
}

// DeleteListing removes a listing and its photo (owner only)
func (s *RentalService) DeleteListing(ctx context.Context, listingID, userID int) error {
	listing, err := s.Repo.GetListing(ctx, listingID)
	if err != nil {
		return errors.New("listing not found")
	}
	if listing.OwnerID != userID {
		return ErrForbidden
	}
	if err := s.Repo.DeleteListing(ctx, listingID); err != nil {
		return err
	}
	if listing.PhotoKey != "" {
		if err := s.Store.Delete(ctx, listing.PhotoKey); err != nil {
			s.Logger.Warn("failed to delete listing photo",
				zap.String("key", listing.PhotoKey), zap.Error(err))
		}
	}
	return nil
}

// CreateOrder books a listing for a date range and opens a Razorpay order.
// Amount is inclusive days times the daily rate plus the deposit. Dates
// overlapping a pending or confirmed order are rejected.
func (s *RentalService) CreateOrder(ctx context.Context, renterID int, req *models.CreateOrderRequest) (*models.CheckoutResponse, error) {
	listing, err := s.Repo.GetListing(ctx, req.ListingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}
	if listing.Status != models.ListingStatusListed {
		return nil, errors.New("listing is not available")
	}
	if listing.OwnerID == renterID {
		return nil, errors.New("cannot rent your own listing")
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, errors.New("start date must be YYYY-MM-DD")
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, errors.New("end date must be YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, errors.New("end date must not be before start date")
	}

	overlaps, err := s.Repo.HasOverlappingOrder(ctx, listing.ID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, errors.New("listing is already booked for those dates")
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1
	amount := float64(days)*listing.DailyRate + listing.Deposit
	amountPaise := int64(amount * 100)

	client := s.getClient(ctx)
	if client == nil {
		return nil, errors.New("online payments are not configured")
	}
	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("rental_%d_%d", listing.ID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"listing_id": listing.ID,
			"renter_id":  renterID,
		},
	}
	rzpOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}
	razorpayOrderID, _ := rzpOrder["id"].(string)

	order := &models.RentalOrder{
		ListingID:       listing.ID,
		RenterID:        renterID,
		StartDate:       startDate,
		EndDate:         endDate,
		Amount:          amount,
		Status:          models.OrderStatusPendingPayment,
		RazorpayOrderID: razorpayOrderID,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	keyID, _, _ := s.getCredentials(ctx)
	return &models.CheckoutResponse{
		Order:           order,
		RazorpayKeyID:   keyID,
		RazorpayOrderID: razorpayOrderID,
		AmountPaise:     amountPaise,
		Currency:        "INR",
	}, nil
}

// VerifyPayment checks the gateway signature and confirms the order
func (s *RentalService) VerifyPayment(ctx context.Context, renterID int, req *models.VerifyPaymentRequest) (*models.RentalOrder, error) {
	order, err := s.Repo.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.RenterID != renterID {
		return nil, ErrForbidden
	}
	if order.Status == models.OrderStatusConfirmed {
		return order, nil // already processed
	}
	if order.Status != models.OrderStatusPendingPayment {
		return nil, errors.New("order is not awaiting payment")
	}
	if order.RazorpayOrderID != req.RazorpayOrderID {
		return nil, errors.New("order mismatch")
	}
	if !s.verifySignature(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, errors.New("invalid payment signature")
	}
	if err := s.confirmOrder(ctx, order, req.RazorpayPaymentID); err != nil {
		return nil, err
	}
	return s.Repo.GetOrder(ctx, order.ID)
}

func (s *RentalService) confirmOrder(ctx context.Context, order *models.RentalOrder, paymentID string) error {
	if err := s.Repo.ConfirmPayment(ctx, order.ID, paymentID); err != nil {
		return err
	}
	listing, err := s.Repo.GetListing(ctx, order.ListingID)
	if err != nil {
		return nil
	}
	s.Notifications.Notify(ctx, listing.OwnerID, models.NotifyKindRentalOrder,
		"Rental booked",
		fmt.Sprintf("%q is booked %s to %s.", listing.Title,
			order.StartDate.Format("2006-01-02"), order.EndDate.Format("2006-01-02")),
		"rental_order", order.ID)
	return nil
}

// verifySignature verifies the Razorpay payment signature
func (s *RentalService) verifySignature(ctx context.Context, orderID, paymentID, signature string) bool {
	_, keySecret, _ := s.getCredentials(ctx)
	if keySecret == "" {
		return false
	}
	data := orderID + "|" + paymentID
	h := hmac.New(sha256.New, []byte(keySecret))
	h.Write([]byte(data))
	expectedSignature := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// VerifyWebhookSignature verifies the webhook signature
func (s *RentalService) VerifyWebhookSignature(ctx context.Context, body []byte, signature string) bool {
	_, _, webhookSecret := s.getCredentials(ctx)
	if webhookSecret == "" {
		return true // Skip verification if not configured
	}
	h := hmac.New(sha256.New, []byte(webhookSecret))
	h.Write(body)
	expectedSignature := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// ProcessWebhook applies Razorpay webhook events
func (s *RentalService) ProcessWebhook(ctx context.Context, event string, paymentData map[string]interface{}) error {
	switch event {
	case "payment.captured":
		return s.handlePaymentCaptured(ctx, paymentData)
	case "payment.failed":
		s.Logger.Warn("rental payment failed", zap.Any("payload", paymentData))
		return nil
	default:
		s.Logger.Info("unhandled razorpay webhook event", zap.String("event", event))
		return nil
	}
}

func (s *RentalService) handlePaymentCaptured(ctx context.Context, paymentData map[string]interface{}) error {
	paymentEntity, ok := paymentData["payment"].(map[string]interface{})
	if !ok {
		paymentEntity = paymentData
	}
	entity, ok := paymentEntity["entity"].(map[string]interface{})
	if !ok {
		entity = paymentEntity
	}

	razorpayOrderID, _ := entity["order_id"].(string)
	paymentID, _ := entity["id"].(string)
	if razorpayOrderID == "" {
		return errors.New("missing order_id in webhook")
	}

	order, err := s.Repo.GetOrderByRazorpayOrderID(ctx, razorpayOrderID)
	if err != nil {
		return fmt.Errorf("order not found for razorpay order %s: %w", razorpayOrderID, err)
	}
	if order.Status == models.OrderStatusConfirmed {
		return nil // already processed
	}
	return s.confirmOrder(ctx, order, paymentID)
}

// CancelOrder lets the renter abandon an unpaid order
func (s *RentalService) CancelOrder(ctx context.Context, orderID, renterID int) (*models.RentalOrder, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.RenterID != renterID {
		return nil, ErrForbidden
	}
	if order.Status != models.OrderStatusPendingPayment {
		return nil, errors.New("only unpaid orders can be cancelled")
	}
	if err := s.Repo.SetOrderStatus(ctx, order.ID, models.OrderStatusCancelled); err != nil {
		return nil, err
	}
	return s.Repo.GetOrder(ctx, order.ID)
}

// CompleteOrder lets the listing owner close out a confirmed rental
func (s *RentalService) CompleteOrder(ctx context.Context, orderID, ownerID int) (*models.RentalOrder, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	listing, err := s.Repo.GetListing(ctx, order.ListingID)
	if err != nil {
		return nil, errors.New("listing not found")
	}
	if listing.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	if order.Status != models.OrderStatusConfirmed {
		return nil, errors.New("only confirmed orders can be completed")
	}
	if err := s.Repo.SetOrderStatus(ctx, order.ID, models.OrderStatusCompleted); err != nil {
		return nil, err
	}
	return s.Repo.GetOrder(ctx, order.ID)
}

// ListMyOrders retrieves orders the caller placed
func (s *RentalService) ListMyOrders(ctx context.Context, renterID int) ([]*models.RentalOrder, error) {
	return s.Repo.ListOrdersByRenter(ctx, renterID)
}

// ListOwnerOrders retrieves orders against the caller's listings
func (s *RentalService) ListOwnerOrders(ctx context.Context, ownerID int) ([]*models.RentalOrder, error) {
	return s.Repo.ListOrdersByOwner(ctx, ownerID)
}
