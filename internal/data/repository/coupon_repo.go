package repository

import (
	"context"
	"fmt"

	"symposium-registration/internal/data/entity"
	"symposium-registration/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error)
	FindByCode(ctx context.Context, code string) (*entity.Coupon, error)
	FindAll(ctx context.Context) ([]*entity.Coupon, error)
	Update(ctx context.Context, coupon *entity.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Redeem bumps used_count if the cap allows it. This is the authoritative
	// check; FindByCode results are advisory.
	Redeem(ctx context.Context, code string) (bool, error)
	Unredeem(ctx context.Context, code string) error
}

type couponRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCouponRepository(db database.PgxIface, log *zap.Logger) CouponRepository {
	return &couponRepository{
		db:  db,
		log: log.With(zap.String("repository", "coupon")),
	}
}

func (r *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, discount_percent, usage_limit, used_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.DiscountPercent,
		coupon.UsageLimit,
		coupon.UsedCount,
		coupon.CreatedAt,
		coupon.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create coupon",
			zap.Error(err),
			zap.String("code", coupon.Code),
		)
		return fmt.Errorf("create coupon %s: %w", coupon.Code, err)
	}

	return nil
}

func (r *couponRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	query := `
		SELECT id, code, discount_percent, usage_limit, used_count, created_at, updated_at, deleted_at
		FROM coupons
		WHERE id = $1 AND deleted_at IS NULL
	`

	var coupon entity.Coupon
	err := r.db.QueryRow(ctx, query, id).Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.DiscountPercent,
		&coupon.UsageLimit,
		&coupon.UsedCount,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
		&coupon.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coupon by ID",
			zap.Error(err),
			zap.String("coupon_id", id.String()),
		)
		return nil, fmt.Errorf("find coupon by ID %s: %w", id.String(), err)
	}

	return &coupon, nil
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	query := `
		SELECT id, code, discount_percent, usage_limit, used_count, created_at, updated_at, deleted_at
		FROM coupons
		WHERE code = $1 AND deleted_at IS NULL
	`

	var coupon entity.Coupon
	err := r.db.QueryRow(ctx, query, code).Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.DiscountPercent,
		&coupon.UsageLimit,
		&coupon.UsedCount,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
		&coupon.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coupon by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find coupon by code %s: %w", code, err)
	}

	return &coupon, nil
}

func (r *couponRepository) FindAll(ctx context.Context) ([]*entity.Coupon, error) {
	query := `
		SELECT id, code, discount_percent, usage_limit, used_count, created_at, updated_at, deleted_at
		FROM coupons
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find coupons", zap.Error(err))
		return nil, fmt.Errorf("find coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*entity.Coupon
	for rows.Next() {
		var coupon entity.Coupon
		err := rows.Scan(
			&coupon.ID,
			&coupon.Code,
			&coupon.DiscountPercent,
			&coupon.UsageLimit,
			&coupon.UsedCount,
			&coupon.CreatedAt,
			&coupon.UpdatedAt,
			&coupon.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan coupon row", zap.Error(err))
			return nil, fmt.Errorf("scan coupon row: %w", err)
		}
		coupons = append(coupons, &coupon)
	}

	return coupons, nil
}

func (r *couponRepository) Update(ctx context.Context, coupon *entity.Coupon) error {
	query := `
		UPDATE coupons
		SET code = $2, discount_percent = $3, usage_limit = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.DiscountPercent,
		coupon.UsageLimit,
		coupon.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update coupon",
			zap.Error(err),
			zap.String("coupon_id", coupon.ID.String()),
		)
		return fmt.Errorf("update coupon %s: %w", coupon.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("coupon %s not found", coupon.ID.String())
	}

	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE coupons SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete coupon",
			zap.Error(err),
			zap.String("coupon_id", id.String()),
		)
		return fmt.Errorf("delete coupon %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("coupon %s not found", id.String())
	}

	r.log.Info("Coupon deleted", zap.String("coupon_id", id.String()))
	return nil
}

func (r *couponRepository) Redeem(ctx context.Context, code string) (bool, error) {
	query := `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE code = $1 AND deleted_at IS NULL AND used_count < usage_limit
	`

	result, err := r.db.Exec(ctx, query, code)
	if err != nil {
		r.log.Error("Failed to redeem coupon",
			zap.Error(err),
			zap.String("code", code),
		)
		return false, fmt.Errorf("redeem coupon %s: %w", code, err)
	}

	return result.RowsAffected() > 0, nil
}

// Unredeem gives a use back after a checkout that redeemed the coupon fails
// further down.
func (r *couponRepository) Unredeem(ctx context.Context, code string) error {
	query := `
		UPDATE coupons
		SET used_count = used_count - 1, updated_at = NOW()
		WHERE code = $1 AND deleted_at IS NULL AND used_count > 0
	`

	_, err := r.db.Exec(ctx, query, code)
	if err != nil {
		r.log.Error("Failed to unredeem coupon",
			zap.Error(err),
			zap.String("code", code),
		)
		return fmt.Errorf("unredeem coupon %s: %w", code, err)
	}

	return nil
}
