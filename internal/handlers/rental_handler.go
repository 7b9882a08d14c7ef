package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

type RentalHandler struct {
	Service  *services.RentalService
	Settings *services.SystemSettingService
	Logger   *zap.Logger
}

func NewRentalHandler(s *services.RentalService, settings *services.SystemSettingService, logger *zap.Logger) *RentalHandler {
	return &RentalHandler{Service: s, Settings: settings, Logger: logger}
}

func (h *RentalHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreateRentalListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing, err := h.Service.CreateListing(r.Context(), userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, listing)
}

// ListListings filters available gear by category, location and free text
func (h *RentalHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listings, err := h.Service.ListListings(r.Context(), q.Get("category"), q.Get("location"), q.Get("q"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list rentals")
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (h *RentalHandler) ListMyListings(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	listings, err := h.Service.ListMyListings(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list rentals")
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (h *RentalHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	listingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := h.Service.GetListing(r.Context(), listingID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *RentalHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	listingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateRentalListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing, err := h.Service.UpdateListing(r.Context(), listingID, userID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

// UploadPhoto attaches a gear photo to the caller's listing
func (h *RentalHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	listingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	maxBytes := uploadLimitBytes(r, h.Settings)
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		respondError(w, http.StatusBadRequest, "file exceeds the upload size limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isImageContentType(contentType) {
		respondError(w, http.StatusBadRequest, "photo must be a JPEG, PNG or WebP image")
		return
	}

	listing, err := h.Service.UploadListingPhoto(r.Context(), listingID, userID, header.Filename, contentType, file)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *RentalHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	listingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteListing(r.Context(), listingID, userID); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "listing removed"})
}

// CreateOrder opens a rental order and a Razorpay payment order for it
func (h *RentalHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	checkout, err := h.Service.CreateOrder(r.Context(), userID, &req)
	if err != nil {
		h.Logger.Error("rental order creation failed", zap.Int("user_id", userID), zap.Error(err))
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, checkout)
}

// VerifyPayment confirms the order after the Razorpay checkout callback
func (h *RentalHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		respondError(w, http.StatusBadRequest, "order id, payment id and signature are required")
		return
	}

	order, err := h.Service.VerifyPayment(r.Context(), userID, &req)
	if err != nil {
		h.Logger.Error("rental payment verification failed", zap.Int("user_id", userID), zap.Error(err))
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// HandleWebhook processes Razorpay webhook events. Unverifiable payloads are
// rejected; processing errors still return 200 so Razorpay does not retry
// events we have already judged.
func (h *RentalHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.Service.VerifyWebhookSignature(r.Context(), body, signature) {
		h.Logger.Warn("razorpay webhook signature mismatch")
		respondError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	event, _ := payload["event"].(string)
	payloadData, _ := payload["payload"].(map[string]interface{})

	if err := h.Service.ProcessWebhook(r.Context(), event, payloadData); err != nil {
		h.Logger.Error("razorpay webhook processing failed",
			zap.String("event", event), zap.Error(err))
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CancelOrder abandons an unpaid order
func (h *RentalHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	orderID, err := pathID(r, "orderID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Service.CancelOrder(r.Context(), orderID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// CompleteOrder closes out a confirmed rental after gear return (owner)
func (h *RentalHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	orderID, err := pathID(r, "orderID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Service.CompleteOrder(r.Context(), orderID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// ListMyOrders shows orders the caller placed as a renter
func (h *RentalHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	orders, err := h.Service.ListMyOrders(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// ListOwnerOrders shows orders against the caller's listings
func (h *RentalHandler) ListOwnerOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	orders, err := h.Service.ListOwnerOrders(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}
