package response

import (
	"symposium-registration/internal/data/entity"
)

type CartItemResponse struct {
	ID               string   `json:"id"`
	Kind             string   `json:"kind"`
	ItemID           string   `json:"item_id"`
	ItemName         string   `json:"item_name"`
	BaseCost         int      `json:"base_cost"`
	DiscountPercent  int      `json:"discount_percent"`
	DiscountReason   string   `json:"discount_reason,omitempty"`
	Quantity         int      `json:"quantity,omitempty"`
	WorkshopEventIDs []string `json:"workshop_event_ids,omitempty"`
	Payable          int      `json:"payable"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int                `json:"total"`
}

// CouponPreviewResponse reports what a coupon would do to the current cart.
// An invalid code sets Message and leaves Payable equal to Total.
type CouponPreviewResponse struct {
	Total           int    `json:"total"`
	Payable         int    `json:"payable"`
	DiscountPercent int    `json:"discount_percent"`
	Message         string `json:"message,omitempty"`
}

func CartItemToResponse(item *entity.CartItem, payable int) CartItemResponse {
	return CartItemResponse{
		ID:               item.ID.String(),
		Kind:             string(item.Kind),
		ItemID:           item.ItemID.String(),
		ItemName:         item.ItemName,
		BaseCost:         item.BaseCost,
		DiscountPercent:  item.DiscountPercent,
		DiscountReason:   item.DiscountReason,
		Quantity:         item.Quantity,
		WorkshopEventIDs: item.WorkshopEventIDs,
		Payable:          payable,
	}
}
