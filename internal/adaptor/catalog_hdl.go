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

type CatalogHandler struct {
	service     usecase.CatalogService
	userService usecase.UserService
	log         *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, userService usecase.UserService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:     service,
		userService: userService,
		log:         log,
	}
}

// college resolves the requesting user's college so listings can show the
// discount that user would actually pay. Anonymous visitors get the general
// rate.
func (h *CatalogHandler) college(r *http.Request) string {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return ""
	}
	profile, err := h.userService.GetProfile(r.Context(), userID.String())
	if err != nil || profile == nil {
		return ""
	}
	return profile.College
}

// GetEvents handles GET /api/events?category=&page=&per_page=
func (h *CatalogHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 20),
	}

	var category *string
	if c := query.Get("category"); c != "" {
		category = &c
	}

	events, err := h.service.GetEvents(r.Context(), req, category, h.college(r))
	if err != nil {
		h.handleServiceError(w, err, "get events")
		return
	}

	utils.ResponseSuccess(w, "Events retrieved successfully", events)
}

// GetEventByID handles GET /api/events/{id}
func (h *CatalogHandler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	event, err := h.service.GetEventByID(r.Context(), eventID, h.college(r))
	if err != nil {
		h.handleServiceError(w, err, "get event")
		return
	}

	utils.ResponseSuccess(w, "Event retrieved successfully", event)
}

// GetPasses handles GET /api/passes
func (h *CatalogHandler) GetPasses(w http.ResponseWriter, r *http.Request) {
	passes, err := h.service.GetPasses(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get passes")
		return
	}

	utils.ResponseSuccess(w, "Passes retrieved successfully", passes)
}

// GetAccommodations handles GET /api/accommodations
func (h *CatalogHandler) GetAccommodations(w http.ResponseWriter, r *http.Request) {
	accommodations, err := h.service.GetAccommodations(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get accommodations")
		return
	}

	utils.ResponseSuccess(w, "Accommodations retrieved successfully", accommodations)
}

// CreateEvent handles POST /api/admin/events (admin only)
func (h *CatalogHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req request.EventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.service.CreateEvent(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create event")
		return
	}

	utils.ResponseCreated(w, "Event created successfully", event)
}

// UpdateEvent handles PUT /api/admin/events/{id} (admin only)
func (h *CatalogHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	var req request.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.service.UpdateEvent(r.Context(), eventID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update event")
		return
	}

	utils.ResponseSuccess(w, "Event updated successfully", event)
}

// DeleteEvent handles DELETE /api/admin/events/{id} (admin only)
func (h *CatalogHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	if err := h.service.DeleteEvent(r.Context(), eventID); err != nil {
		h.handleServiceError(w, err, "delete event")
		return
	}

	utils.ResponseSuccess(w, "Event deleted successfully", nil)
}

// CreatePass handles POST /api/admin/passes (admin only)
func (h *CatalogHandler) CreatePass(w http.ResponseWriter, r *http.Request) {
	var req request.PassRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pass, err := h.service.CreatePass(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create pass")
		return
	}

	utils.ResponseCreated(w, "Pass created successfully", pass)
}

// UpdatePass handles PUT /api/admin/passes/{id} (admin only)
func (h *CatalogHandler) UpdatePass(w http.ResponseWriter, r *http.Request) {
	passID := chi.URLParam(r, "id")
	if passID == "" {
		utils.ResponseBadRequest(w, "Pass ID is required", nil)
		return
	}

	var req request.PassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pass, err := h.service.UpdatePass(r.Context(), passID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update pass")
		return
	}

	utils.ResponseSuccess(w, "Pass updated successfully", pass)
}

// DeletePass handles DELETE /api/admin/passes/{id} (admin only)
func (h *CatalogHandler) DeletePass(w http.ResponseWriter, r *http.Request) {
	passID := chi.URLParam(r, "id")
	if passID == "" {
		utils.ResponseBadRequest(w, "Pass ID is required", nil)
		return
	}

	if err := h.service.DeletePass(r.Context(), passID); err != nil {
		h.handleServiceError(w, err, "delete pass")
		return
	}

	utils.ResponseSuccess(w, "Pass deleted successfully", nil)
}

// CreateAccommodation handles POST /api/admin/accommodations (admin only)
func (h *CatalogHandler) CreateAccommodation(w http.ResponseWriter, r *http.Request) {
	var req request.AccommodationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	acc, err := h.service.CreateAccommodation(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create accommodation")
		return
	}

	utils.ResponseCreated(w, "Accommodation created successfully", acc)
}

// UpdateAccommodation handles PUT /api/admin/accommodations/{id} (admin only)
func (h *CatalogHandler) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	accID := chi.URLParam(r, "id")
	if accID == "" {
		utils.ResponseBadRequest(w, "Accommodation ID is required", nil)
		return
	}

	var req request.AccommodationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	acc, err := h.service.UpdateAccommodation(r.Context(), accID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update accommodation")
		return
	}

	utils.ResponseSuccess(w, "Accommodation updated successfully", acc)
}

// DeleteAccommodation handles DELETE /api/admin/accommodations/{id} (admin only)
func (h *CatalogHandler) DeleteAccommodation(w http.ResponseWriter, r *http.Request) {
	accID := chi.URLParam(r, "id")
	if accID == "" {
		utils.ResponseBadRequest(w, "Accommodation ID is required", nil)
		return
	}

	if err := h.service.DeleteAccommodation(r.Context(), accID); err != nil {
		h.handleServiceError(w, err, "delete accommodation")
		return
	}

	utils.ResponseSuccess(w, "Accommodation deleted successfully", nil)
}

// handleServiceError handles errors for catalog operations
func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	case strings.Contains(errMsg, "already exists"):
		h.log.Warn(operation+" failed - duplicate", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
