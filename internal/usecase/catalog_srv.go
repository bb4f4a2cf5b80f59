package usecase

import (
	"context"
	"fmt"
	"time"

	"symposium-registration/internal/data/entity"
	"symposium-registration/internal/data/repository"
	"symposium-registration/internal/dto/request"
	"symposium-registration/internal/dto/response"
	"symposium-registration/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	// Public listings. college may be empty for anonymous visitors; the
	// discount shown is resolved against it.
	GetEvents(ctx context.Context, req *request.PaginatedRequest, category *string, college string) (*response.PaginatedResponse[response.EventResponse], error)
	GetEventByID(ctx context.Context, eventID, college string) (*response.EventResponse, error)
	GetPasses(ctx context.Context) ([]response.PassResponse, error)
	GetAccommodations(ctx context.Context) ([]response.AccommodationResponse, error)

	// Admin management
	CreateEvent(ctx context.Context, req *request.EventRequest) (*response.EventResponse, error)
	UpdateEvent(ctx context.Context, eventID string, req *request.EventRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, eventID string) error
	CreatePass(ctx context.Context, req *request.PassRequest) (*response.PassResponse, error)
	UpdatePass(ctx context.Context, passID string, req *request.PassRequest) (*response.PassResponse, error)
	DeletePass(ctx context.Context, passID string) error
	CreateAccommodation(ctx context.Context, req *request.AccommodationRequest) (*response.AccommodationResponse, error)
	UpdateAccommodation(ctx context.Context, accommodationID string, req *request.AccommodationRequest) (*response.AccommodationResponse, error)
	DeleteAccommodation(ctx context.Context, accommodationID string) error
}

type catalogService struct {
	repo            *repository.Repository
	hostInstitution string
	log             *zap.Logger
}

func NewCatalogService(repo *repository.Repository, config *utils.Config, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:            repo,
		hostInstitution: config.Symposium.HostInstitution,
		log:             log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) eventResponse(event *entity.Event, college string) response.EventResponse {
	percent, reason := EventDiscount(event, IsHostInstitution(college, s.hostInstitution))
	return response.EventToResponse(event, percent, reason, EffectivePrice(event.Fee, percent))
}

func (s *catalogService) GetEvents(ctx context.Context, req *request.PaginatedRequest, category *string, college string) (*response.PaginatedResponse[response.EventResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	events, err := s.repo.Event.FindAll(ctx, limit, offset, category)
	if err != nil {
		s.log.Error("Failed to get events",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
			zap.Stringp("category", category),
		)
		return nil, fmt.Errorf("get events: %w", err)
	}

	total, err := s.repo.Event.CountAll(ctx, category)
	if err != nil {
		s.log.Error("Failed to count events", zap.Error(err))
		return nil, fmt.Errorf("count events: %w", err)
	}

	eventResponses := make([]response.EventResponse, len(events))
	for i, event := range events {
		eventResponses[i] = s.eventResponse(event, college)
	}

	return response.NewPaginatedResponse(eventResponses, req.Page, req.PerPage, total), nil
}

func (s *catalogService) GetEventByID(ctx context.Context, eventID, college string) (*response.EventResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s not found", eventID)
	}

	resp := s.eventResponse(event, college)
	return &resp, nil
}

func (s *catalogService) GetPasses(ctx context.Context) ([]response.PassResponse, error) {
	passes, err := s.repo.Pass.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get passes", zap.Error(err))
		return nil, fmt.Errorf("get passes: %w", err)
	}

	passResponses := make([]response.PassResponse, len(passes))
	for i, pass := range passes {
		passResponses[i] = response.PassToResponse(pass)
	}

	return passResponses, nil
}

func (s *catalogService) GetAccommodations(ctx context.Context) ([]response.AccommodationResponse, error) {
	accs, err := s.repo.Accommodation.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get accommodations", zap.Error(err))
		return nil, fmt.Errorf("get accommodations: %w", err)
	}

	accResponses := make([]response.AccommodationResponse, len(accs))
	for i, acc := range accs {
		accResponses[i] = response.AccommodationToResponse(acc)
	}

	return accResponses, nil
}

// ==================== ADMIN: EVENTS ====================

func (s *catalogService) CreateEvent(ctx context.Context, req *request.EventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	roundOne, err := time.Parse("2006-01-02", req.RoundOneDate)
	if err != nil {
		return nil, fmt.Errorf("invalid round one date %s: %w", req.RoundOneDate, err)
	}

	now := time.Now()
	event := &entity.Event{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:               req.Name,
		Description:        req.Description,
		Category:           entity.EventCategory(req.Category),
		Venue:              req.Venue,
		Fee:                req.Fee,
		DiscountPercent:    req.DiscountPercent,
		MITDiscountPercent: req.MITDiscountPercent,
		DiscountReason:     req.DiscountReason,
		RoundOneDate:       roundOne,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.log.Error("Failed to create event", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("name", event.Name),
		zap.Int("fee", event.Fee),
	)

	resp := s.eventResponse(event, "")
	return &resp, nil
}

func (s *catalogService) UpdateEvent(ctx context.Context, eventID string, req *request.EventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s not found", eventID)
	}

	roundOne, err := time.Parse("2006-01-02", req.RoundOneDate)
	if err != nil {
		return nil, fmt.Errorf("invalid round one date %s: %w", req.RoundOneDate, err)
	}

	event.Name = req.Name
	event.Description = req.Description
	event.Category = entity.EventCategory(req.Category)
	event.Venue = req.Venue
	event.Fee = req.Fee
	event.DiscountPercent = req.DiscountPercent
	event.MITDiscountPercent = req.MITDiscountPercent
	event.DiscountReason = req.DiscountReason
	event.RoundOneDate = roundOne
	event.UpdatedAt = time.Now()

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.log.Error("Failed to update event", zap.Error(err), zap.String("event_id", eventID))
		return nil, fmt.Errorf("update event: %w", err)
	}

	resp := s.eventResponse(event, "")
	return &resp, nil
}

func (s *catalogService) DeleteEvent(ctx context.Context, eventID string) error {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}
	return s.repo.Event.Delete(ctx, id)
}

// ==================== ADMIN: PASSES ====================

func (s *catalogService) CreatePass(ctx context.Context, req *request.PassRequest) (*response.PassResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	pass := &entity.Pass{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Category:    entity.PassCategory(req.Category),
		Cost:        req.Cost,
	}

	if err := s.repo.Pass.Create(ctx, pass); err != nil {
		s.log.Error("Failed to create pass", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create pass: %w", err)
	}

	s.log.Info("Pass created",
		zap.String("pass_id", pass.ID.String()),
		zap.String("name", pass.Name),
		zap.Int("cost", pass.Cost),
	)

	resp := response.PassToResponse(pass)
	return &resp, nil
}

func (s *catalogService) UpdatePass(ctx context.Context, passID string, req *request.PassRequest) (*response.PassResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(passID)
	if err != nil {
		return nil, fmt.Errorf("invalid pass ID format %s: %w", passID, err)
	}

	pass, err := s.repo.Pass.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get pass: %w", err)
	}
	if pass == nil {
		return nil, fmt.Errorf("pass %s not found", passID)
	}

	pass.Name = req.Name
	pass.Description = req.Description
	pass.Category = entity.PassCategory(req.Category)
	pass.Cost = req.Cost
	pass.UpdatedAt = time.Now()

	if err := s.repo.Pass.Update(ctx, pass); err != nil {
		s.log.Error("Failed to update pass", zap.Error(err), zap.String("pass_id", passID))
		return nil, fmt.Errorf("update pass: %w", err)
	}

	resp := response.PassToResponse(pass)
	return &resp, nil
}

func (s *catalogService) DeletePass(ctx context.Context, passID string) error {
	id, err := uuid.Parse(passID)
	if err != nil {
		return fmt.Errorf("invalid pass ID format %s: %w", passID, err)
	}
	return s.repo.Pass.Delete(ctx, id)
}

// ==================== ADMIN: ACCOMMODATION ====================

func (s *catalogService) CreateAccommodation(ctx context.Context, req *request.AccommodationRequest) (*response.AccommodationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	acc := &entity.Accommodation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           req.Name,
		Description:    req.Description,
		CostPerNight:   req.CostPerNight,
		RoomsAvailable: req.RoomsAvailable,
	}

	if err := s.repo.Accommodation.Create(ctx, acc); err != nil {
		s.log.Error("Failed to create accommodation", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create accommodation: %w", err)
	}

	s.log.Info("Accommodation created",
		zap.String("accommodation_id", acc.ID.String()),
		zap.String("name", acc.Name),
		zap.Int("rooms", acc.RoomsAvailable),
	)

	resp := response.AccommodationToResponse(acc)
	return &resp, nil
}

func (s *catalogService) UpdateAccommodation(ctx context.Context, accommodationID string, req *request.AccommodationRequest) (*response.AccommodationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(accommodationID)
	if err != nil {
		return nil, fmt.Errorf("invalid accommodation ID format %s: %w", accommodationID, err)
	}

	acc, err := s.repo.Accommodation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get accommodation: %w", err)
	}
	if acc == nil {
		return nil, fmt.Errorf("accommodation %s not found", accommodationID)
	}

	acc.Name = req.Name
	acc.Description = req.Description
	acc.CostPerNight = req.CostPerNight
	acc.RoomsAvailable = req.RoomsAvailable
	acc.UpdatedAt = time.Now()

	if err := s.repo.Accommodation.Update(ctx, acc); err != nil {
		s.log.Error("Failed to update accommodation", zap.Error(err), zap.String("accommodation_id", accommodationID))
		return nil, fmt.Errorf("update accommodation: %w", err)
	}

	resp := response.AccommodationToResponse(acc)
	return &resp, nil
}

func (s *catalogService) DeleteAccommodation(ctx context.Context, accommodationID string) error {
	id, err := uuid.Parse(accommodationID)
	if err != nil {
		return fmt.Errorf("invalid accommodation ID format %s: %w", accommodationID, err)
	}
	return s.repo.Accommodation.Delete(ctx, id)
}
