package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"symposium-registration/internal/dto/request"
	"symposium-registration/internal/usecase"
	"symposium-registration/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log,
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID.String())
	if err != nil {
		h.handleServiceError(w, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "Cart retrieved successfully", cart)
}

// AddEvent handles POST /api/cart/events
func (h *CartHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.service.AddEvent(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "add event to cart")
		return
	}

	utils.ResponseSuccess(w, "Event added to cart", cart)
}

// AddPass handles POST /api/cart/passes
func (h *CartHandler) AddPass(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddPassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.service.AddPass(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "add pass to cart")
		return
	}

	utils.ResponseSuccess(w, "Pass added to cart", cart)
}

// AddAccommodation handles POST /api/cart/accommodations
func (h *CartHandler) AddAccommodation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddAccommodationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.service.AddAccommodation(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "add accommodation to cart")
		return
	}

	utils.ResponseSuccess(w, "Accommodation added to cart", cart)
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		utils.ResponseBadRequest(w, "Cart item ID is required", nil)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), userID.String(), itemID)
	if err != nil {
		h.handleServiceError(w, err, "remove cart item")
		return
	}

	utils.ResponseSuccess(w, "Cart item removed", cart)
}

// PreviewCoupon handles POST /api/cart/coupon
func (h *CartHandler) PreviewCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ApplyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	preview, err := h.service.PreviewCoupon(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "preview coupon")
		return
	}

	utils.ResponseSuccess(w, "Coupon previewed", preview)
}

// handleServiceError handles errors for cart operations
func (h *CartHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "requires at least one"),
		strings.Contains(errMsg, "not a workshop"),
		strings.Contains(errMsg, "same date"),
		strings.Contains(errMsg, "no rooms available"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
