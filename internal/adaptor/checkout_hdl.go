package adaptor

import (
	"io"
	"net/http"
	"strings"

	"symposium-registration/internal/dto/request"
	"symposium-registration/internal/usecase"
	"symposium-registration/pkg/utils"

	"go.uber.org/zap"
)

// maxProofSize caps a payment proof upload at 5 MB.
const maxProofSize = 5 << 20

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log,
	}
}

// Checkout handles POST /api/checkout. The body is multipart/form-data:
// transaction fields plus a "proof" file part. The proof may be omitted only
// when the cart total is zero.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := &request.CheckoutRequest{
		TransactionID:   strings.TrimSpace(r.FormValue("transaction_id")),
		TransactionTime: strings.TrimSpace(r.FormValue("transaction_time")),
		TransactionDate: strings.TrimSpace(r.FormValue("transaction_date")),
		CouponCode:      strings.TrimSpace(r.FormValue("coupon_code")),
	}

	file, header, err := r.FormFile("proof")
	if err == nil {
		defer file.Close()

		data, readErr := io.ReadAll(io.LimitReader(file, maxProofSize+1))
		if readErr != nil {
			utils.ResponseBadRequest(w, "Failed to read proof file", nil)
			return
		}
		if len(data) > maxProofSize {
			utils.ResponseBadRequest(w, "Proof file exceeds 5 MB limit", nil)
			return
		}

		req.ProofName = header.Filename
		req.Proof = data
	} else if err != http.ErrMissingFile {
		utils.ResponseBadRequest(w, "Invalid proof upload", nil)
		return
	}

	result, err := h.service.Checkout(r.Context(), userID.String(), req)
	if err != nil {
		h.handleServiceError(w, err, "checkout")
		return
	}

	utils.ResponseCreated(w, "Checkout completed", result)
}

// GetMyRegistrations handles GET /api/my/registrations
func (h *CheckoutHandler) GetMyRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	regs, err := h.service.GetMyRegistrations(r.Context(), userID.String())
	if err != nil {
		h.handleServiceError(w, err, "get registrations")
		return
	}

	utils.ResponseSuccess(w, "Registrations retrieved successfully", regs)
}

// handleServiceError handles errors for checkout operations
func (h *CheckoutHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "cart is empty"),
		strings.Contains(errMsg, "required for paid checkout"),
		strings.Contains(errMsg, "already registered"),
		strings.Contains(errMsg, "no rooms available"),
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
