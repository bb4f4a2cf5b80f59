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

type CartRepository interface {
	Create(ctx context.Context, item *entity.CartItem) error
	Update(ctx context.Context, item *entity.CartItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)
	FindByUserAndItem(ctx context.Context, userID uuid.UUID, kind entity.CartItemKind, itemID uuid.UUID) (*entity.CartItem, error)
	FindByUserAndKind(ctx context.Context, userID uuid.UUID, kind entity.CartItemKind) ([]*entity.CartItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

const cartColumns = `id, user_id, kind, item_id, item_name, base_cost,
	discount_percent, discount_reason, quantity, workshop_event_ids,
	created_at, updated_at`

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	var item entity.CartItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Kind,
		&item.ItemID,
		&item.ItemName,
		&item.BaseCost,
		&item.DiscountPercent,
		&item.DiscountReason,
		&item.Quantity,
		&item.WorkshopEventIDs,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Create(ctx context.Context, item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, kind, item_id, item_name, base_cost,
		                       discount_percent, discount_reason, quantity,
		                       workshop_event_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.Kind,
		item.ItemID,
		item.ItemName,
		item.BaseCost,
		item.DiscountPercent,
		item.DiscountReason,
		item.Quantity,
		item.WorkshopEventIDs,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create cart item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.String("kind", string(item.Kind)),
		)
		return fmt.Errorf("create cart item for user %s: %w", item.UserID.String(), err)
	}

	return nil
}

func (r *cartRepository) Update(ctx context.Context, item *entity.CartItem) error {
	query := `
		UPDATE cart_items
		SET item_id = $2, item_name = $3, base_cost = $4, discount_percent = $5,
		    discount_reason = $6, quantity = $7, workshop_event_ids = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		item.ID,
		item.ItemID,
		item.ItemName,
		item.BaseCost,
		item.DiscountPercent,
		item.DiscountReason,
		item.Quantity,
		item.WorkshopEventIDs,
		item.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update cart item",
			zap.Error(err),
			zap.String("cart_item_id", item.ID.String()),
		)
		return fmt.Errorf("update cart item %s: %w", item.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item %s not found", item.ID.String())
	}

	return nil
}

func (r *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_items
		WHERE id = $1
	`

	item, err := scanCartItem(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart item by ID",
			zap.Error(err),
			zap.String("cart_item_id", id.String()),
		)
		return nil, fmt.Errorf("find cart item by ID %s: %w", id.String(), err)
	}

	return item, nil
}

func (r *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find cart items by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find cart items for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			r.log.Error("Failed to scan cart item row", zap.Error(err))
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *cartRepository) FindByUserAndItem(ctx context.Context, userID uuid.UUID, kind entity.CartItemKind, itemID uuid.UUID) (*entity.CartItem, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_items
		WHERE user_id = $1 AND kind = $2 AND item_id = $3
	`

	item, err := scanCartItem(r.db.QueryRow(ctx, query, userID, kind, itemID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart item by user and item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("kind", string(kind)),
			zap.String("item_id", itemID.String()),
		)
		return nil, fmt.Errorf("find cart item for user %s: %w", userID.String(), err)
	}

	return item, nil
}

func (r *cartRepository) FindByUserAndKind(ctx context.Context, userID uuid.UUID, kind entity.CartItemKind) ([]*entity.CartItem, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_items
		WHERE user_id = $1 AND kind = $2
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID, kind)
	if err != nil {
		r.log.Error("Failed to find cart items by user and kind",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("kind", string(kind)),
		)
		return nil, fmt.Errorf("find %s cart items for user %s: %w", string(kind), userID.String(), err)
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			r.log.Error("Failed to scan cart item row", zap.Error(err))
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete cart item",
			zap.Error(err),
			zap.String("cart_item_id", id.String()),
		)
		return fmt.Errorf("delete cart item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item %s not found", id.String())
	}

	return nil
}

func (r *cartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to clear cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("clear cart for user %s: %w", userID.String(), err)
	}

	return nil
}
