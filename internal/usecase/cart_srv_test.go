package usecase

import (
	"context"
	"testing"
	"time"

	"symposium-registration/internal/data/entity"
	"symposium-registration/internal/data/repository"
	"symposium-registration/internal/dto/request"
	"symposium-registration/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCartFixture() (*repository.Repository, *mockUserRepo, *mockEventRepo, *mockPassRepo, *mockAccommodationRepo, *mockCouponRepo, *mockCartRepo, CartService) {
	users := new(mockUserRepo)
	events := new(mockEventRepo)
	passes := new(mockPassRepo)
	accs := new(mockAccommodationRepo)
	coupons := new(mockCouponRepo)
	carts := new(mockCartRepo)

	repo := &repository.Repository{
		User:          users,
		Event:         events,
		Pass:          passes,
		Accommodation: accs,
		Coupon:        coupons,
		Cart:          carts,
	}

	config := &utils.Config{Symposium: utils.SymposiumConfig{HostInstitution: "MIT"}}
	service := NewCartService(repo, config, zap.NewNop())

	return repo, users, events, passes, accs, coupons, carts, service
}

func TestAddEventSnapshotsHostDiscount(t *testing.T) {
	_, users, events, _, _, _, carts, service := newCartFixture()

	userID := uuid.New()
	eventID := uuid.New()

	event := &entity.Event{
		Base:               entity.Base{ID: eventID},
		Name:               "Robo Sumo",
		Fee:                1000,
		DiscountPercent:    10,
		MITDiscountPercent: 20,
		DiscountReason:     "Early Bird",
	}

	events.On("FindByID", mock.Anything, eventID).Return(event, nil)
	users.On("FindByID", mock.Anything, userID).Return(&entity.User{
		Base:    entity.Base{ID: userID},
		College: "M.I.T.",
	}, nil)
	carts.On("FindByUserAndItem", mock.Anything, userID, entity.CartItemEvent, eventID).Return(nil, nil)
	carts.On("Create", mock.Anything, mock.MatchedBy(func(item *entity.CartItem) bool {
		return item.Kind == entity.CartItemEvent &&
			item.BaseCost == 1000 &&
			item.DiscountPercent == 20 &&
			item.DiscountReason == "MIT Student Special Discount"
	})).Return(nil)
	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{UserID: userID, Kind: entity.CartItemEvent, ItemID: eventID, BaseCost: 1000, DiscountPercent: 20},
	}, nil)

	cart, err := service.AddEvent(context.Background(), userID.String(), &request.AddEventRequest{EventID: eventID.String()})
	require.NoError(t, err)
	assert.Equal(t, 800, cart.Total)
	carts.AssertExpectations(t)
}

func TestAddEventIsIdempotent(t *testing.T) {
	_, users, events, _, _, _, carts, service := newCartFixture()

	userID := uuid.New()
	eventID := uuid.New()

	event := &entity.Event{
		Base: entity.Base{ID: eventID},
		Name: "Code Golf",
		Fee:  500,
	}
	existing := &entity.CartItem{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		UserID:       userID,
		Kind:         entity.CartItemEvent,
		ItemID:       eventID,
		BaseCost:     400, // stale snapshot from before a fee change
	}

	events.On("FindByID", mock.Anything, eventID).Return(event, nil)
	users.On("FindByID", mock.Anything, userID).Return(&entity.User{
		Base:    entity.Base{ID: userID},
		College: "Elsewhere",
	}, nil)
	carts.On("FindByUserAndItem", mock.Anything, userID, entity.CartItemEvent, eventID).Return(existing, nil)
	carts.On("Update", mock.Anything, mock.MatchedBy(func(item *entity.CartItem) bool {
		return item.ID == existing.ID && item.BaseCost == 500
	})).Return(nil)
	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{existing}, nil)

	_, err := service.AddEvent(context.Background(), userID.String(), &request.AddEventRequest{EventID: eventID.String()})
	require.NoError(t, err)

	carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	carts.AssertExpectations(t)
}

func TestAddWorkshopPassRequiresSelection(t *testing.T) {
	_, _, _, passes, _, _, _, service := newCartFixture()

	userID := uuid.New()
	passID := uuid.New()

	passes.On("FindByID", mock.Anything, passID).Return(&entity.Pass{
		Base:     entity.Base{ID: passID},
		Name:     "Workshop Pass",
		Category: entity.PassCategoryWorkshop,
		Cost:     1200,
	}, nil)

	_, err := service.AddPass(context.Background(), userID.String(), &request.AddPassRequest{PassID: passID.String()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one workshop")
}

func TestAddWorkshopPassRejectsSameDateWorkshops(t *testing.T) {
	_, _, events, passes, _, _, _, service := newCartFixture()

	userID := uuid.New()
	passID := uuid.New()
	w1 := uuid.New()
	w2 := uuid.New()

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	passes.On("FindByID", mock.Anything, passID).Return(&entity.Pass{
		Base:     entity.Base{ID: passID},
		Category: entity.PassCategoryWorkshop,
		Cost:     1200,
	}, nil)
	events.On("FindByIDs", mock.Anything, mock.Anything).Return([]*entity.Event{
		{Base: entity.Base{ID: w1}, Name: "Soldering", Category: entity.EventCategoryWorkshop, RoundOneDate: day},
		{Base: entity.Base{ID: w2}, Name: "PCB Design", Category: entity.EventCategoryWorkshop, RoundOneDate: day.Add(3 * time.Hour)},
	}, nil)

	_, err := service.AddPass(context.Background(), userID.String(), &request.AddPassRequest{
		PassID:           passID.String(),
		WorkshopEventIDs: []string{w1.String(), w2.String()},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same date")
}

func TestAddWorkshopPassRejectsNonWorkshopEvent(t *testing.T) {
	_, _, events, passes, _, _, _, service := newCartFixture()

	userID := uuid.New()
	passID := uuid.New()
	eventID := uuid.New()

	passes.On("FindByID", mock.Anything, passID).Return(&entity.Pass{
		Base:     entity.Base{ID: passID},
		Category: entity.PassCategoryWorkshop,
		Cost:     1200,
	}, nil)
	events.On("FindByIDs", mock.Anything, mock.Anything).Return([]*entity.Event{
		{Base: entity.Base{ID: eventID}, Name: "Quiz Night", Category: entity.EventCategoryNonTechnical},
	}, nil)

	_, err := service.AddPass(context.Background(), userID.String(), &request.AddPassRequest{
		PassID:           passID.String(),
		WorkshopEventIDs: []string{eventID.String()},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a workshop")
}

func TestAddAccommodationReplacesExistingLine(t *testing.T) {
	_, _, _, _, accs, _, carts, service := newCartFixture()

	userID := uuid.New()
	oldAccID := uuid.New()
	newAccID := uuid.New()

	existing := &entity.CartItem{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		UserID:       userID,
		Kind:         entity.CartItemAccommodation,
		ItemID:       oldAccID,
		BaseCost:     300,
		Quantity:     2,
	}

	accs.On("FindByID", mock.Anything, newAccID).Return(&entity.Accommodation{
		Base:           entity.Base{ID: newAccID},
		Name:           "Deluxe Hostel",
		CostPerNight:   500,
		RoomsAvailable: 4,
	}, nil)
	carts.On("FindByUserAndKind", mock.Anything, userID, entity.CartItemAccommodation).Return([]*entity.CartItem{existing}, nil)
	carts.On("Update", mock.Anything, mock.MatchedBy(func(item *entity.CartItem) bool {
		return item.ID == existing.ID && item.ItemID == newAccID && item.BaseCost == 500 && item.Quantity == 3
	})).Return(nil)
	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{existing}, nil)

	_, err := service.AddAccommodation(context.Background(), userID.String(), &request.AddAccommodationRequest{
		AccommodationID: newAccID.String(),
		Nights:          3,
	})
	require.NoError(t, err)

	carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	carts.AssertExpectations(t)
}

func TestAddAccommodationRejectedWhenSoldOut(t *testing.T) {
	_, _, _, _, accs, _, _, service := newCartFixture()

	userID := uuid.New()
	accID := uuid.New()

	accs.On("FindByID", mock.Anything, accID).Return(&entity.Accommodation{
		Base:           entity.Base{ID: accID},
		Name:           "Budget Hostel",
		CostPerNight:   200,
		RoomsAvailable: 0,
	}, nil)

	_, err := service.AddAccommodation(context.Background(), userID.String(), &request.AddAccommodationRequest{
		AccommodationID: accID.String(),
		Nights:          1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rooms available")
}

func TestRemoveItemChecksOwnership(t *testing.T) {
	_, _, _, _, _, _, carts, service := newCartFixture()

	userID := uuid.New()
	itemID := uuid.New()

	carts.On("FindByID", mock.Anything, itemID).Return(&entity.CartItem{
		BaseNoDelete: entity.BaseNoDelete{ID: itemID},
		UserID:       uuid.New(), // someone else's line
	}, nil)

	_, err := service.RemoveItem(context.Background(), userID.String(), itemID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPreviewCouponInvalidCodeIsMessageNotError(t *testing.T) {
	_, _, _, _, _, coupons, carts, service := newCartFixture()

	userID := uuid.New()

	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{Kind: entity.CartItemEvent, BaseCost: 1000, DiscountPercent: 15}, // 850
	}, nil)
	coupons.On("FindByCode", mock.Anything, "NOPE").Return(nil, nil)

	preview, err := service.PreviewCoupon(context.Background(), userID.String(), &request.ApplyCouponRequest{Code: "NOPE"})
	require.NoError(t, err)
	assert.Equal(t, 850, preview.Total)
	assert.Equal(t, 850, preview.Payable)
	assert.NotEmpty(t, preview.Message)
}

func TestPreviewCouponAppliesOverDiscountedTotal(t *testing.T) {
	_, _, _, _, _, coupons, carts, service := newCartFixture()

	userID := uuid.New()

	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{Kind: entity.CartItemEvent, BaseCost: 1000, DiscountPercent: 15}, // 850
	}, nil)
	coupons.On("FindByCode", mock.Anything, "SYMP10").Return(&entity.Coupon{
		Code:            "SYMP10",
		DiscountPercent: 10,
		UsageLimit:      100,
	}, nil)

	preview, err := service.PreviewCoupon(context.Background(), userID.String(), &request.ApplyCouponRequest{Code: "SYMP10"})
	require.NoError(t, err)
	assert.Equal(t, 850, preview.Total)
	assert.Equal(t, 765, preview.Payable)
	assert.Empty(t, preview.Message)
}

func TestPreviewCouponExhausted(t *testing.T) {
	_, _, _, _, _, coupons, carts, service := newCartFixture()

	userID := uuid.New()

	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{Kind: entity.CartItemPass, BaseCost: 600},
	}, nil)
	coupons.On("FindByCode", mock.Anything, "GONE").Return(&entity.Coupon{
		Code:            "GONE",
		DiscountPercent: 50,
		UsageLimit:      5,
		UsedCount:       5,
	}, nil)

	preview, err := service.PreviewCoupon(context.Background(), userID.String(), &request.ApplyCouponRequest{Code: "GONE"})
	require.NoError(t, err)
	assert.Equal(t, 600, preview.Payable)
	assert.Contains(t, preview.Message, "limit")
}
