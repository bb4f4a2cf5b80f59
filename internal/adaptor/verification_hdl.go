package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"symposium-registration/internal/dto/request"
	"symposium-registration/internal/usecase"
	"symposium-registration/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxBulkCSVSize caps a bulk verification upload at 1 MB.
const maxBulkCSVSize = 1 << 20

type VerificationHandler struct {
	service usecase.VerificationService
	log     *zap.Logger
}

func NewVerificationHandler(service usecase.VerificationService, log *zap.Logger) *VerificationHandler {
	return &VerificationHandler{
		service: service,
		log:     log,
	}
}

// ListPending handles GET /api/admin/registrations/pending (admin only)
func (h *VerificationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 20),
	}

	pending, err := h.service.ListPending(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list pending registrations")
		return
	}

	utils.ResponseSuccess(w, "Pending registrations retrieved successfully", pending)
}

// Verify handles POST /api/admin/registrations/verify (admin only)
func (h *VerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	regs, err := h.service.Verify(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "verify transaction")
		return
	}

	utils.ResponseSuccess(w, "Transaction verified", regs)
}

// Reject handles POST /api/admin/registrations/reject (admin only)
func (h *VerificationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	regs, err := h.service.Reject(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "reject transaction")
		return
	}

	utils.ResponseSuccess(w, "Transaction rejected", regs)
}

// BulkVerify handles POST /api/admin/registrations/bulk-verify (admin only).
// Expects multipart/form-data with a "file" part holding a one-column CSV of
// transaction ids.
func (h *VerificationHandler) BulkVerify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBulkCSVSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, "CSV file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.service.BulkVerify(r.Context(), file)
	if err != nil {
		h.handleServiceError(w, err, "bulk verify")
		return
	}

	utils.ResponseSuccess(w, "Bulk verification finished", result)
}

// GetProof handles GET /api/admin/registrations/{id}/proof (admin only). The
// proof bytes stream straight out; no JSON envelope.
func (h *VerificationHandler) GetProof(w http.ResponseWriter, r *http.Request) {
	registrationID := chi.URLParam(r, "id")
	if registrationID == "" {
		utils.ResponseBadRequest(w, "Registration ID is required", nil)
		return
	}

	name, data, err := h.service.GetProof(r.Context(), registrationID)
	if err != nil {
		h.handleServiceError(w, err, "get payment proof")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Warn("Failed to stream payment proof", zap.Error(err))
	}
}

// MarkPassIssued handles POST /api/admin/issuances/{id}/issue (admin only)
func (h *VerificationHandler) MarkPassIssued(w http.ResponseWriter, r *http.Request) {
	issuanceID := chi.URLParam(r, "id")
	if issuanceID == "" {
		utils.ResponseBadRequest(w, "Issuance ID is required", nil)
		return
	}

	issuance, err := h.service.MarkPassIssued(r.Context(), issuanceID)
	if err != nil {
		h.handleServiceError(w, err, "mark pass issued")
		return
	}

	utils.ResponseSuccess(w, "Pass marked as issued", issuance)
}

// GetMyIssuances handles GET /api/issuances
func (h *VerificationHandler) GetMyIssuances(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	issuances, err := h.service.GetUserIssuances(r.Context(), userID.String())
	if err != nil {
		h.handleServiceError(w, err, "get issuances")
		return
	}

	utils.ResponseSuccess(w, "Issuances retrieved successfully", issuances)
}

// handleServiceError handles errors for verification operations
func (h *VerificationHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already processed"),
		strings.Contains(errMsg, "already issued"),
		strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "has no payment proof"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
