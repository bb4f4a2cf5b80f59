package usecase

import (
	"context"
	"fmt"
	"time"

	"symposium-registration/internal/data/entity"
	"symposium-registration/internal/data/repository"
	"symposium-registration/internal/dto/request"
	"symposium-registration/internal/dto/response"
	"symposium-registration/pkg/mailer"
	"symposium-registration/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutListener is notified after a checkout has fully succeeded: every
// registration row written, the cart cleared. Listeners run synchronously and
// exactly once per checkout.
type CheckoutListener func(userID, transactionID string, amount int)

type CheckoutService interface {
	Checkout(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	GetMyRegistrations(ctx context.Context, userID string) ([]response.RegistrationResponse, error)
	AddListener(l CheckoutListener)
}

type checkoutService struct {
	repo      *repository.Repository
	mail      mailer.Mailer
	listeners []CheckoutListener
	log       *zap.Logger
}

func NewCheckoutService(repo *repository.Repository, mail mailer.Mailer, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo: repo,
		mail: mail,
		log:  log.With(zap.String("service", "checkout")),
	}
}

// AddListener registers a completion callback. Call during wiring, before the
// server starts taking requests; the slice is not guarded for later writes.
func (s *checkoutService) AddListener(l CheckoutListener) {
	s.listeners = append(s.listeners, l)
}

func (s *checkoutService) Checkout(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	items, err := s.repo.Cart.FindByUser(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	total := CartTotal(items)

	// Coupon is redeemed up front with a conditional update so two carts
	// cannot share the last use. Everything after this point that fails
	// must give the use back.
	couponApplied := false
	if req.CouponCode != "" && total > 0 {
		redeemed, err := s.repo.Coupon.Redeem(ctx, req.CouponCode)
		if err != nil {
			return nil, fmt.Errorf("redeem coupon: %w", err)
		}
		if redeemed {
			coupon, err := s.repo.Coupon.FindByCode(ctx, req.CouponCode)
			if err != nil || coupon == nil {
				s.unredeem(ctx, req.CouponCode)
				return nil, fmt.Errorf("redeem coupon: %w", err)
			}
			total = ApplyCoupon(total, coupon.DiscountPercent)
			couponApplied = true
		}
		// Not redeemed means invalid or exhausted; the checkout proceeds
		// at the undiscounted total, mirroring the cart preview.
	}

	free := total == 0

	transactionID := req.TransactionID
	if free {
		transactionID = utils.GenerateTransactionRef()
	} else {
		if req.TransactionID == "" || req.TransactionTime == "" || req.TransactionDate == "" {
			if couponApplied {
				s.unredeem(ctx, req.CouponCode)
			}
			return nil, fmt.Errorf("transaction details are required for paid checkout")
		}
		if len(req.Proof) == 0 || req.ProofName == "" {
			if couponApplied {
				s.unredeem(ctx, req.CouponCode)
			}
			return nil, fmt.Errorf("payment proof is required for paid checkout")
		}

		existing, err := s.repo.Registration.FindByTransactionID(ctx, transactionID)
		if err != nil {
			if couponApplied {
				s.unredeem(ctx, req.CouponCode)
			}
			return nil, fmt.Errorf("check transaction: %w", err)
		}
		if len(existing) > 0 {
			if couponApplied {
				s.unredeem(ctx, req.CouponCode)
			}
			return nil, fmt.Errorf("transaction ID %s is already registered", transactionID)
		}
	}

	// Rooms are decremented with a conditional update; the cart-time check
	// was only advisory and may be stale by now.
	var reservedRooms []uuid.UUID
	rollback := func() {
		for _, accID := range reservedRooms {
			if err := s.repo.Accommodation.ReleaseRoom(ctx, accID); err != nil {
				s.log.Error("Failed to release room during rollback",
					zap.Error(err),
					zap.String("accommodation_id", accID.String()),
				)
			}
		}
		if couponApplied {
			s.unredeem(ctx, req.CouponCode)
		}
	}

	for _, item := range items {
		if item.Kind != entity.CartItemAccommodation {
			continue
		}
		ok, err := s.repo.Accommodation.ReserveRoom(ctx, item.ItemID)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("reserve room: %w", err)
		}
		if !ok {
			rollback()
			return nil, fmt.Errorf("no rooms available for %s", item.ItemName)
		}
		reservedRooms = append(reservedRooms, item.ItemID)
	}

	// Free checkouts self-verify; there is no payment for an admin to
	// inspect.
	var verified *bool
	if free {
		t := true
		verified = &t
	}

	now := time.Now()
	regs := make([]*entity.Registration, 0, len(items))
	for _, item := range items {
		reg := &entity.Registration{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:            userUUID,
			Kind:              item.Kind,
			ItemID:            item.ItemID,
			ItemName:          item.ItemName,
			Quantity:          item.Quantity,
			WorkshopEventIDs:  item.WorkshopEventIDs,
			TransactionID:     transactionID,
			TransactionTime:   req.TransactionTime,
			TransactionDate:   req.TransactionDate,
			TransactionAmount: total,
			ProofName:         req.ProofName,
			ProofData:         req.Proof,
			Verified:          verified,
		}
		if err := s.repo.Registration.Create(ctx, reg); err != nil {
			rollback()
			for _, created := range regs {
				if derr := s.repo.Registration.Delete(ctx, created.ID); derr != nil {
					s.log.Error("Failed to delete registration during rollback",
						zap.Error(derr),
						zap.String("registration_id", created.ID.String()),
					)
				}
			}
			s.log.Error("Failed to create registration",
				zap.Error(err),
				zap.String("user_id", userID),
				zap.String("transaction_id", transactionID),
			)
			return nil, fmt.Errorf("create registration: %w", err)
		}
		regs = append(regs, reg)

		// Self-verified pass lines open their issuance ledger row here,
		// matching what admin verification does for paid carts.
		if free && reg.Kind == entity.CartItemPass {
			if err := s.openIssuance(ctx, reg); err != nil {
				s.log.Error("Failed to open pass issuance",
					zap.Error(err),
					zap.String("registration_id", reg.ID.String()),
				)
			}
		}
	}

	if err := s.repo.Cart.DeleteByUser(ctx, userUUID); err != nil {
		// Registrations are already committed; an uncleaned cart is an
		// annoyance, not a reason to fail the purchase.
		s.log.Error("Failed to clear cart after checkout",
			zap.Error(err),
			zap.String("user_id", userID),
		)
	}

	s.log.Info("Checkout completed",
		zap.String("user_id", userID),
		zap.String("transaction_id", transactionID),
		zap.Int("amount", total),
		zap.Int("lines", len(regs)),
		zap.Bool("free", free),
	)

	for _, l := range s.listeners {
		l(userID, transactionID, total)
	}

	go s.sendConfirmation(user, transactionID, total, free)

	regResponses := make([]response.RegistrationResponse, len(regs))
	for i, reg := range regs {
		regResponses[i] = response.RegistrationToResponse(reg)
	}

	return &response.CheckoutResponse{
		TransactionID: transactionID,
		Amount:        total,
		Free:          free,
		Registrations: regResponses,
	}, nil
}

func (s *checkoutService) GetMyRegistrations(ctx context.Context, userID string) ([]response.RegistrationResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	regs, err := s.repo.Registration.FindByUser(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("get registrations: %w", err)
	}

	regResponses := make([]response.RegistrationResponse, len(regs))
	for i, reg := range regs {
		regResponses[i] = response.RegistrationToResponse(reg)
	}
	return regResponses, nil
}

// ==================== HELPER METHODS ====================

func (s *checkoutService) openIssuance(ctx context.Context, reg *entity.Registration) error {
	issuance := &entity.PassIssuance{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:         reg.UserID,
		PassID:         reg.ItemID,
		RegistrationID: reg.ID,
	}
	return s.repo.PassIssuance.Create(ctx, issuance)
}

func (s *checkoutService) unredeem(ctx context.Context, code string) {
	if err := s.repo.Coupon.Unredeem(ctx, code); err != nil {
		s.log.Error("Failed to return coupon use",
			zap.Error(err),
			zap.String("code", code),
		)
	}
}

func (s *checkoutService) sendConfirmation(user *entity.User, transactionID string, amount int, free bool) {
	subject := "Registration received"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour registration (ref %s, amount %d) has been recorded and is awaiting payment verification.\r\n\r\nSymposium Team",
		user.Name, transactionID, amount,
	)
	if free {
		subject = "Registration confirmed"
		body = fmt.Sprintf(
			"Hi %s,\r\n\r\nYour registration (ref %s) is confirmed. See you at the symposium!\r\n\r\nSymposium Team",
			user.Name, transactionID,
		)
	}

	if err := s.mail.Send([]string{user.Email}, subject, body); err != nil {
		s.log.Warn("Failed to send confirmation email",
			zap.Error(err),
			zap.String("email", user.Email),
		)
	}
}
