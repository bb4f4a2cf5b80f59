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

type CartService interface {
	AddEvent(ctx context.Context, userID string, req *request.AddEventRequest) (*response.CartResponse, error)
	AddPass(ctx context.Context, userID string, req *request.AddPassRequest) (*response.CartResponse, error)
	AddAccommodation(ctx context.Context, userID string, req *request.AddAccommodationRequest) (*response.CartResponse, error)
	RemoveItem(ctx context.Context, userID, cartItemID string) (*response.CartResponse, error)
	GetCart(ctx context.Context, userID string) (*response.CartResponse, error)
	PreviewCoupon(ctx context.Context, userID string, req *request.ApplyCouponRequest) (*response.CouponPreviewResponse, error)
}

type cartService struct {
	repo            *repository.Repository
	hostInstitution string
	log             *zap.Logger
}

func NewCartService(repo *repository.Repository, config *utils.Config, log *zap.Logger) CartService {
	return &cartService{
		repo:            repo,
		hostInstitution: config.Symposium.HostInstitution,
		log:             log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) AddEvent(ctx context.Context, userID string, req *request.AddEventRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", req.EventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s not found", req.EventID)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	// Snapshot the discount the user is entitled to right now; it is the
	// cost basis checkout will charge.
	percent, reason := EventDiscount(event, IsHostInstitution(user.College, s.hostInstitution))

	existing, err := s.repo.Cart.FindByUserAndItem(ctx, userUUID, entity.CartItemEvent, eventID)
	if err != nil {
		return nil, fmt.Errorf("check cart: %w", err)
	}

	now := time.Now()
	if existing != nil {
		// Idempotent per type+id: refresh the snapshot instead of duplicating.
		existing.ItemName = event.Name
		existing.BaseCost = event.Fee
		existing.DiscountPercent = percent
		existing.DiscountReason = reason
		existing.UpdatedAt = now
		if err := s.repo.Cart.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update cart line: %w", err)
		}
		return s.buildCart(ctx, userUUID)
	}

	item := &entity.CartItem{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          userUUID,
		Kind:            entity.CartItemEvent,
		ItemID:          eventID,
		ItemName:        event.Name,
		BaseCost:        event.Fee,
		DiscountPercent: percent,
		DiscountReason:  reason,
	}

	if err := s.repo.Cart.Create(ctx, item); err != nil {
		s.log.Error("Failed to add event to cart",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("event_id", req.EventID),
		)
		return nil, fmt.Errorf("add event to cart: %w", err)
	}

	s.log.Info("Event added to cart",
		zap.String("user_id", userID),
		zap.String("event_id", req.EventID),
		zap.Int("fee", event.Fee),
		zap.Int("discount_percent", percent),
	)

	return s.buildCart(ctx, userUUID)
}

func (s *cartService) AddPass(ctx context.Context, userID string, req *request.AddPassRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add pass validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	passID, err := uuid.Parse(req.PassID)
	if err != nil {
		return nil, fmt.Errorf("invalid pass ID format %s: %w", req.PassID, err)
	}

	pass, err := s.repo.Pass.FindByID(ctx, passID)
	if err != nil {
		return nil, fmt.Errorf("get pass: %w", err)
	}
	if pass == nil {
		return nil, fmt.Errorf("pass %s not found", req.PassID)
	}

	var workshopIDs []string
	if pass.Category == entity.PassCategoryWorkshop {
		workshopIDs, err = s.validateWorkshopSelection(ctx, req.WorkshopEventIDs)
		if err != nil {
			return nil, err
		}
	}

	existing, err := s.repo.Cart.FindByUserAndItem(ctx, userUUID, entity.CartItemPass, passID)
	if err != nil {
		return nil, fmt.Errorf("check cart: %w", err)
	}

	now := time.Now()
	if existing != nil {
		existing.ItemName = pass.Name
		existing.BaseCost = pass.Cost
		existing.WorkshopEventIDs = workshopIDs
		existing.UpdatedAt = now
		if err := s.repo.Cart.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update cart line: %w", err)
		}
		return s.buildCart(ctx, userUUID)
	}

	item := &entity.CartItem{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:           userUUID,
		Kind:             entity.CartItemPass,
		ItemID:           passID,
		ItemName:         pass.Name,
		BaseCost:         pass.Cost,
		WorkshopEventIDs: workshopIDs,
	}

	if err := s.repo.Cart.Create(ctx, item); err != nil {
		s.log.Error("Failed to add pass to cart",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("pass_id", req.PassID),
		)
		return nil, fmt.Errorf("add pass to cart: %w", err)
	}

	s.log.Info("Pass added to cart",
		zap.String("user_id", userID),
		zap.String("pass_id", req.PassID),
		zap.Int("cost", pass.Cost),
		zap.Int("workshop_count", len(workshopIDs)),
	)

	return s.buildCart(ctx, userUUID)
}

func (s *cartService) AddAccommodation(ctx context.Context, userID string, req *request.AddAccommodationRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add accommodation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	accID, err := uuid.Parse(req.AccommodationID)
	if err != nil {
		return nil, fmt.Errorf("invalid accommodation ID format %s: %w", req.AccommodationID, err)
	}

	acc, err := s.repo.Accommodation.FindByID(ctx, accID)
	if err != nil {
		return nil, fmt.Errorf("get accommodation: %w", err)
	}
	if acc == nil {
		return nil, fmt.Errorf("accommodation %s not found", req.AccommodationID)
	}

	// Advisory check only; the authoritative decrement happens at checkout.
	if acc.RoomsAvailable <= 0 {
		return nil, fmt.Errorf("no rooms available for %s", acc.Name)
	}

	// A user holds at most one accommodation booking: an existing line of
	// this kind is replaced, whatever tier it pointed at.
	existingLines, err := s.repo.Cart.FindByUserAndKind(ctx, userUUID, entity.CartItemAccommodation)
	if err != nil {
		return nil, fmt.Errorf("check cart: %w", err)
	}

	now := time.Now()
	if len(existingLines) > 0 {
		line := existingLines[0]
		line.ItemID = accID
		line.ItemName = acc.Name
		line.BaseCost = acc.CostPerNight
		line.Quantity = req.Nights
		line.UpdatedAt = now
		if err := s.repo.Cart.Update(ctx, line); err != nil {
			return nil, fmt.Errorf("update cart line: %w", err)
		}
		// A second line can only exist if two tabs raced; drop extras.
		for _, extra := range existingLines[1:] {
			if err := s.repo.Cart.Delete(ctx, extra.ID); err != nil {
				s.log.Warn("Failed to drop duplicate accommodation line",
					zap.Error(err),
					zap.String("cart_item_id", extra.ID.String()),
				)
			}
		}
		return s.buildCart(ctx, userUUID)
	}

	item := &entity.CartItem{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:   userUUID,
		Kind:     entity.CartItemAccommodation,
		ItemID:   accID,
		ItemName: acc.Name,
		BaseCost: acc.CostPerNight,
		Quantity: req.Nights,
	}

	if err := s.repo.Cart.Create(ctx, item); err != nil {
		s.log.Error("Failed to add accommodation to cart",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("accommodation_id", req.AccommodationID),
		)
		return nil, fmt.Errorf("add accommodation to cart: %w", err)
	}

	s.log.Info("Accommodation added to cart",
		zap.String("user_id", userID),
		zap.String("accommodation_id", req.AccommodationID),
		zap.Int("nights", req.Nights),
	)

	return s.buildCart(ctx, userUUID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, cartItemID string) (*response.CartResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	itemID, err := uuid.Parse(cartItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid cart item ID format %s: %w", cartItemID, err)
	}

	item, err := s.repo.Cart.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	if item == nil || item.UserID != userUUID {
		return nil, fmt.Errorf("cart item %s not found", cartItemID)
	}

	if err := s.repo.Cart.Delete(ctx, itemID); err != nil {
		return nil, fmt.Errorf("remove cart item: %w", err)
	}

	s.log.Info("Cart item removed",
		zap.String("user_id", userID),
		zap.String("cart_item_id", cartItemID),
	)

	return s.buildCart(ctx, userUUID)
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*response.CartResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	return s.buildCart(ctx, userUUID)
}

func (s *cartService) PreviewCoupon(ctx context.Context, userID string, req *request.ApplyCouponRequest) (*response.CouponPreviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	items, err := s.repo.Cart.FindByUser(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	total := CartTotal(items)
	preview := &response.CouponPreviewResponse{
		Total:   total,
		Payable: total,
	}

	// An invalid coupon is a message, not an error: the per-item discounts
	// already in the total stay as they are.
	coupon, err := s.repo.Coupon.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("check coupon: %w", err)
	}
	if coupon == nil {
		preview.Message = "coupon code not found"
		return preview, nil
	}
	if coupon.Exhausted() {
		preview.Message = "coupon usage limit reached"
		return preview, nil
	}

	preview.DiscountPercent = coupon.DiscountPercent
	preview.Payable = ApplyCoupon(total, coupon.DiscountPercent)

	s.log.Info("Coupon previewed",
		zap.String("user_id", userID),
		zap.String("code", req.Code),
		zap.Int("total", total),
		zap.Int("payable", preview.Payable),
	)

	return preview, nil
}

// ==================== HELPER METHODS ====================

// buildCart re-reads the store after every mutation; the database is the
// source of truth, not whatever this process last saw.
func (s *cartService) buildCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	items, err := s.repo.Cart.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	itemResponses := make([]response.CartItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = response.CartItemToResponse(item, LinePayable(item))
	}

	return &response.CartResponse{
		Items: itemResponses,
		Total: CartTotal(items),
	}, nil
}

// validateWorkshopSelection checks a workshop pass sub-selection: non-empty,
// every event exists and is a workshop, and no two share a round-one
// calendar date.
func (s *cartService) validateWorkshopSelection(ctx context.Context, rawIDs []string) ([]string, error) {
	if len(rawIDs) == 0 {
		return nil, fmt.Errorf("workshop pass requires at least one workshop selection")
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	seen := make(map[uuid.UUID]bool, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid workshop event ID format %s: %w", raw, err)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	events, err := s.repo.Event.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get workshop events: %w", err)
	}
	if len(events) != len(ids) {
		return nil, fmt.Errorf("one or more selected workshops not found")
	}

	// Uniqueness is by round-1 calendar date, not event id: a buyer cannot
	// attend two workshops scheduled on the same day.
	byDate := make(map[string]string, len(events))
	selection := make([]string, 0, len(events))
	for _, event := range events {
		if event.Category != entity.EventCategoryWorkshop {
			return nil, fmt.Errorf("event %s is not a workshop", event.Name)
		}
		date := event.RoundOneDate.Format("2006-01-02")
		if other, clash := byDate[date]; clash {
			return nil, fmt.Errorf("workshops %s and %s are scheduled on the same date", other, event.Name)
		}
		byDate[date] = event.Name
		selection = append(selection, event.ID.String())
	}

	return selection, nil
}
