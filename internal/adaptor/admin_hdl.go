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

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

// MarkAttendance handles POST /api/admin/attendance (admin only)
func (h *AdminHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	att, err := h.service.MarkAttendance(r.Context(), adminID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "mark attendance")
		return
	}

	utils.ResponseSuccess(w, "Attendance marked", att)
}

// GetEventAttendance handles GET /api/admin/events/{id}/attendance (admin only)
func (h *AdminHandler) GetEventAttendance(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	records, err := h.service.GetEventAttendance(r.Context(), eventID)
	if err != nil {
		h.handleServiceError(w, err, "get attendance")
		return
	}

	utils.ResponseSuccess(w, "Attendance retrieved successfully", records)
}

// BroadcastEmail handles POST /api/admin/broadcast (admin only)
func (h *AdminHandler) BroadcastEmail(w http.ResponseWriter, r *http.Request) {
	var req request.BroadcastEmailRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.BroadcastEmail(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "broadcast email")
		return
	}

	utils.ResponseSuccess(w, "Broadcast finished", result)
}

// handleServiceError handles errors for admin operations
func (h *AdminHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "no recipients"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
