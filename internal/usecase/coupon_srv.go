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

type CouponService interface {
	CreateCoupon(ctx context.Context, req *request.CouponRequest) (*response.CouponResponse, error)
	GetCoupons(ctx context.Context) ([]response.CouponResponse, error)
	UpdateCoupon(ctx context.Context, couponID string, req *request.CouponRequest) (*response.CouponResponse, error)
	DeleteCoupon(ctx context.Context, couponID string) error
}

type couponService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCouponService(repo *repository.Repository, log *zap.Logger) CouponService {
	return &couponService{
		repo: repo,
		log:  log.With(zap.String("service", "coupon")),
	}
}

func (s *couponService) CreateCoupon(ctx context.Context, req *request.CouponRequest) (*response.CouponResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create coupon validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Coupon.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("check coupon code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("coupon code %s already exists", req.Code)
	}

	now := time.Now()
	coupon := &entity.Coupon{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		UsageLimit:      req.UsageLimit,
	}

	if err := s.repo.Coupon.Create(ctx, coupon); err != nil {
		s.log.Error("Failed to create coupon", zap.Error(err), zap.String("code", req.Code))
		return nil, fmt.Errorf("create coupon: %w", err)
	}

	s.log.Info("Coupon created",
		zap.String("code", req.Code),
		zap.Int("discount_percent", req.DiscountPercent),
		zap.Int("usage_limit", req.UsageLimit),
	)

	resp := response.CouponToResponse(coupon)
	return &resp, nil
}

func (s *couponService) GetCoupons(ctx context.Context) ([]response.CouponResponse, error) {
	coupons, err := s.repo.Coupon.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get coupons: %w", err)
	}

	resp := make([]response.CouponResponse, len(coupons))
	for i, coupon := range coupons {
		resp[i] = response.CouponToResponse(coupon)
	}
	return resp, nil
}

func (s *couponService) UpdateCoupon(ctx context.Context, couponID string, req *request.CouponRequest) (*response.CouponResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update coupon validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(couponID)
	if err != nil {
		return nil, fmt.Errorf("invalid coupon ID format %s: %w", couponID, err)
	}

	coupon, err := s.repo.Coupon.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return nil, fmt.Errorf("coupon %s not found", couponID)
	}

	// Uses already consumed are never forgotten; only code, percent and
	// limit can change.
	coupon.Code = req.Code
	coupon.DiscountPercent = req.DiscountPercent
	coupon.UsageLimit = req.UsageLimit
	coupon.UpdatedAt = time.Now()

	if err := s.repo.Coupon.Update(ctx, coupon); err != nil {
		s.log.Error("Failed to update coupon", zap.Error(err), zap.String("coupon_id", couponID))
		return nil, fmt.Errorf("update coupon: %w", err)
	}

	s.log.Info("Coupon updated", zap.String("coupon_id", couponID), zap.String("code", req.Code))

	resp := response.CouponToResponse(coupon)
	return &resp, nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, couponID string) error {
	id, err := uuid.Parse(couponID)
	if err != nil {
		return fmt.Errorf("invalid coupon ID format %s: %w", couponID, err)
	}

	if err := s.repo.Coupon.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}

	s.log.Info("Coupon deleted", zap.String("coupon_id", couponID))
	return nil
}
