package usecase

import (
	"context"
	"strings"
	"testing"

	"symposium-registration/internal/data/entity"
	"symposium-registration/internal/data/repository"
	"symposium-registration/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCheckoutFixture() (*mockUserRepo, *mockAccommodationRepo, *mockCouponRepo, *mockCartRepo, *mockRegistrationRepo, *mockPassIssuanceRepo, *mockMailer, CheckoutService) {
	users := new(mockUserRepo)
	accs := new(mockAccommodationRepo)
	coupons := new(mockCouponRepo)
	carts := new(mockCartRepo)
	regs := new(mockRegistrationRepo)
	issuances := new(mockPassIssuanceRepo)
	mail := new(mockMailer)

	repo := &repository.Repository{
		User:          users,
		Accommodation: accs,
		Coupon:        coupons,
		Cart:          carts,
		Registration:  regs,
		PassIssuance:  issuances,
	}

	service := NewCheckoutService(repo, mail, zap.NewNop())
	return users, accs, coupons, carts, regs, issuances, mail, service
}

func checkoutUser(users *mockUserRepo, mail *mockMailer) uuid.UUID {
	userID := uuid.New()
	users.On("FindByID", mock.Anything, userID).Return(&entity.User{
		Base:  entity.Base{ID: userID},
		Name:  "Priya",
		Email: "priya@example.edu",
	}, nil)
	// Confirmation email goes out on a goroutine after success.
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return userID
}

func TestCheckoutEmptyCart(t *testing.T) {
	users, _, _, carts, _, _, mail, service := newCheckoutFixture()

	userID := checkoutUser(users, mail)
	carts.On("FindByUser", mock.Anything, userID).Return(nil, nil)

	_, err := service.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestCheckoutFreeCartSelfVerifies(t *testing.T) {
	users, _, _, carts, regs, _, mail, service := newCheckoutFixture()

	userID := checkoutUser(users, mail)
	eventID := uuid.New()

	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{UserID: userID, Kind: entity.CartItemEvent, ItemID: eventID, ItemName: "Open Quiz", BaseCost: 0},
	}, nil)
	regs.On("Create", mock.Anything, mock.MatchedBy(func(reg *entity.Registration) bool {
		return reg.Verified != nil && *reg.Verified &&
			reg.TransactionAmount == 0 &&
			strings.HasPrefix(reg.TransactionID, "REG-")
	})).Return(nil)
	carts.On("DeleteByUser", mock.Anything, userID).Return(nil)

	listenerCalls := 0
	service.AddListener(func(uid, txn string, amount int) {
		listenerCalls++
		assert.Equal(t, userID.String(), uid)
		assert.Equal(t, 0, amount)
	})

	result, err := service.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{})
	require.NoError(t, err)

	assert.True(t, result.Free)
	assert.Equal(t, 0, result.Amount)
	assert.True(t, strings.HasPrefix(result.TransactionID, "REG-"))
	assert.Equal(t, 1, listenerCalls)
	regs.AssertExpectations(t)
	carts.AssertExpectations(t)
}

func TestCheckoutFreePassLineOpensIssuance(t *testing.T) {
	users, _, _, carts, regs, issuances, mail, service := newCheckoutFixture()

	userID := checkoutUser(users, mail)
	passID := uuid.New()

	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{UserID: userID, Kind: entity.CartItemPass, ItemID: passID, ItemName: "Workshop Pass", BaseCost: 0},
	}, nil)

	var regID uuid.UUID
	regs.On("Create", mock.Anything, mock.MatchedBy(func(reg *entity.Registration) bool {
		regID = reg.ID
		return reg.Verified != nil && *reg.Verified
	})).Return(nil)
	// A self-verified pass gets its ledger row at checkout, the same as a
	// paid pass gets one at admin verification.
	issuances.On("Create", mock.Anything, mock.MatchedBy(func(iss *entity.PassIssuance) bool {
		return iss.UserID == userID &&
			iss.PassID == passID &&
			iss.RegistrationID == regID &&
			!iss.Issued
	})).Return(nil)
	carts.On("DeleteByUser", mock.Anything, userID).Return(nil)

	result, err := service.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{})
	require.NoError(t, err)

	assert.True(t, result.Free)
	regs.AssertExpectations(t)
	issuances.AssertExpectations(t)
}

func TestCheckoutPaidRequiresProof(t *testing.T) {
	users, _, _, carts, _, _, mail, service := newCheckoutFixture()

	userID := checkoutUser(users, mail)
	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{UserID: userID, Kind: entity.CartItemEvent, BaseCost: 500},
	}, nil)

	_, err := service.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{
		TransactionID:   "TXN-1",
		TransactionTime: "10:30",
		TransactionDate: "2026-03-01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proof is required")
}

func TestCheckoutRejectsDuplicateTransactionID(t *testing.T) {
	users, _, _, carts, regs, _, mail, service := newCheckoutFixture()

	userID := checkoutUser(users, mail)
	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{UserID: userID, Kind: entity.CartItemEvent, BaseCost: 500},
	}, nil)
	regs.On("FindByTransactionID", mock.Anything, "TXN-1").Return([]*entity.Registration{
		{TransactionID: "TXN-1"},
	}, nil)

	_, err := service.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{
		TransactionID:   "TXN-1",
		TransactionTime: "10:30",
		TransactionDate: "2026-03-01",
		ProofName:       "proof.png",
		Proof:           []byte{1, 2, 3},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestCheckoutWritesOneRegistrationPerLine(t *testing.T) {
	users, _, _, carts, regs, _, mail, service := newCheckoutFixture()

	userID := checkoutUser(users, mail)
	eventID := uuid.New()
	passID := uuid.New()

	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{UserID: userID, Kind: entity.CartItemEvent, ItemID: eventID, ItemName: "Robo Sumo", BaseCost: 1000, DiscountPercent: 20}, // 800
		{UserID: userID, Kind: entity.CartItemPass, ItemID: passID, ItemName: "Tech Pass", BaseCost: 500},                         // 500
	}, nil)
	regs.On("FindByTransactionID", mock.Anything, "TXN-9").Return(nil, nil)
	regs.On("Create", mock.Anything, mock.MatchedBy(func(reg *entity.Registration) bool {
		return reg.TransactionID == "TXN-9" &&
			reg.TransactionAmount == 1300 &&
			reg.Pending()
	})).Return(nil).Times(2)
	carts.On("DeleteByUser", mock.Anything, userID).Return(nil)

	result, err := service.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{
		TransactionID:   "TXN-9",
		TransactionTime: "10:30",
		TransactionDate: "2026-03-01",
		ProofName:       "proof.png",
		Proof:           []byte{1, 2, 3},
	})
	require.NoError(t, err)

	assert.False(t, result.Free)
	assert.Equal(t, 1300, result.Amount)
	assert.Len(t, result.Registrations, 2)
	regs.AssertExpectations(t)
}

func TestCheckoutCouponReducesAmount(t *testing.T) {
	users, _, coupons, carts, regs, _, mail, service := newCheckoutFixture()

	userID := checkoutUser(users, mail)

	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{UserID: userID, Kind: entity.CartItemEvent, ItemID: uuid.New(), BaseCost: 1000}, // 1000
	}, nil)
	coupons.On("Redeem", mock.Anything, "SYMP10").Return(true, nil)
	coupons.On("FindByCode", mock.Anything, "SYMP10").Return(&entity.Coupon{
		Code:            "SYMP10",
		DiscountPercent: 10,
		UsageLimit:      100,
		UsedCount:       1,
	}, nil)
	regs.On("FindByTransactionID", mock.Anything, "TXN-2").Return(nil, nil)
	regs.On("Create", mock.Anything, mock.MatchedBy(func(reg *entity.Registration) bool {
		return reg.TransactionAmount == 900
	})).Return(nil)
	carts.On("DeleteByUser", mock.Anything, userID).Return(nil)

	result, err := service.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{
		TransactionID:   "TXN-2",
		TransactionTime: "10:30",
		TransactionDate: "2026-03-01",
		CouponCode:      "SYMP10",
		ProofName:       "proof.png",
		Proof:           []byte{1},
	})
	require.NoError(t, err)
	assert.Equal(t, 900, result.Amount)
}

func TestCheckoutRoomFailureReturnsCouponUse(t *testing.T) {
	users, accs, coupons, carts, regs, _, mail, service := newCheckoutFixture()

	userID := checkoutUser(users, mail)
	accID := uuid.New()

	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{UserID: userID, Kind: entity.CartItemAccommodation, ItemID: accID, ItemName: "Hostel", BaseCost: 400, Quantity: 2},
	}, nil)
	coupons.On("Redeem", mock.Anything, "SYMP10").Return(true, nil)
	coupons.On("FindByCode", mock.Anything, "SYMP10").Return(&entity.Coupon{
		Code:            "SYMP10",
		DiscountPercent: 10,
		UsageLimit:      100,
	}, nil)
	regs.On("FindByTransactionID", mock.Anything, "TXN-3").Return(nil, nil)
	accs.On("ReserveRoom", mock.Anything, accID).Return(false, nil)
	coupons.On("Unredeem", mock.Anything, "SYMP10").Return(nil)

	_, err := service.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{
		TransactionID:   "TXN-3",
		TransactionTime: "10:30",
		TransactionDate: "2026-03-01",
		CouponCode:      "SYMP10",
		ProofName:       "proof.png",
		Proof:           []byte{1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rooms available")
	coupons.AssertCalled(t, "Unredeem", mock.Anything, "SYMP10")
	regs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutInvalidCouponProceedsAtFullPrice(t *testing.T) {
	users, _, coupons, carts, regs, _, mail, service := newCheckoutFixture()

	userID := checkoutUser(users, mail)

	carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{
		{UserID: userID, Kind: entity.CartItemEvent, ItemID: uuid.New(), BaseCost: 700},
	}, nil)
	coupons.On("Redeem", mock.Anything, "BOGUS").Return(false, nil)
	regs.On("FindByTransactionID", mock.Anything, "TXN-4").Return(nil, nil)
	regs.On("Create", mock.Anything, mock.Anything).Return(nil)
	carts.On("DeleteByUser", mock.Anything, userID).Return(nil)

	result, err := service.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{
		TransactionID:   "TXN-4",
		TransactionTime: "10:30",
		TransactionDate: "2026-03-01",
		CouponCode:      "BOGUS",
		ProofName:       "proof.png",
		Proof:           []byte{1},
	})
	require.NoError(t, err)
	assert.Equal(t, 700, result.Amount)
	coupons.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
}
