package entity

import (
	"github.com/google/uuid"
)

type CartItemKind string

const (
	CartItemEvent         CartItemKind = "event"
	CartItemPass          CartItemKind = "pass"
	CartItemAccommodation CartItemKind = "accommodation"
)

// CartItem is one line of a user's cart. The union over the three kinds is
// carried in one row: discount fields are set for events, Quantity (nights)
// for accommodation, WorkshopEventIDs for workshop passes.
type CartItem struct {
	BaseNoDelete
	UserID           uuid.UUID    `db:"user_id"`
	Kind             CartItemKind `db:"kind"`
	ItemID           uuid.UUID    `db:"item_id"`
	ItemName         string       `db:"item_name"`
	BaseCost         int          `db:"base_cost"`
	DiscountPercent  int          `db:"discount_percent"`
	DiscountReason   string       `db:"discount_reason"`
	Quantity         int          `db:"quantity"`
	WorkshopEventIDs []string     `db:"workshop_event_ids"`
}
