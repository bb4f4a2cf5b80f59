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

type CouponHandler struct {
	service usecase.CouponService
	log     *zap.Logger
}

func NewCouponHandler(service usecase.CouponService, log *zap.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		log:     log,
	}
}

// CreateCoupon handles POST /api/admin/coupons (admin only)
func (h *CouponHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req request.CouponRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	coupon, err := h.service.CreateCoupon(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create coupon")
		return
	}

	utils.ResponseCreated(w, "Coupon created successfully", coupon)
}

// GetCoupons handles GET /api/admin/coupons (admin only)
func (h *CouponHandler) GetCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.GetCoupons(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get coupons")
		return
	}

	utils.ResponseSuccess(w, "Coupons retrieved successfully", coupons)
}

// UpdateCoupon handles PUT /api/admin/coupons/{id} (admin only)
func (h *CouponHandler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	couponID := chi.URLParam(r, "id")
	if couponID == "" {
		utils.ResponseBadRequest(w, "Coupon ID is required", nil)
		return
	}

	var req request.CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	coupon, err := h.service.UpdateCoupon(r.Context(), couponID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update coupon")
		return
	}

	utils.ResponseSuccess(w, "Coupon updated successfully", coupon)
}

// DeleteCoupon handles DELETE /api/admin/coupons/{id} (admin only)
func (h *CouponHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	couponID := chi.URLParam(r, "id")
	if couponID == "" {
		utils.ResponseBadRequest(w, "Coupon ID is required", nil)
		return
	}

	if err := h.service.DeleteCoupon(r.Context(), couponID); err != nil {
		h.handleServiceError(w, err, "delete coupon")
		return
	}

	utils.ResponseSuccess(w, "Coupon deleted successfully", nil)
}

// handleServiceError handles errors for coupon operations
func (h *CouponHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already exists"),
		strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
