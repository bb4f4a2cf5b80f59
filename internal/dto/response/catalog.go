package response

import (
	"time"

	"symposium-registration/internal/data/entity"
)

type EventResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Category        string `json:"category"`
	Venue           string `json:"venue,omitempty"`
	Fee             int    `json:"fee"`
	DiscountPercent int    `json:"discount_percent"`
	DiscountReason  string `json:"discount_reason,omitempty"`
	EffectiveFee    int    `json:"effective_fee"`
	RoundOneDate    string `json:"round_one_date"`
}

type PassResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Cost        int    `json:"cost"`
}

type AccommodationResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	CostPerNight   int    `json:"cost_per_night"`
	RoomsAvailable int    `json:"rooms_available"`
}

type CouponResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	UsageLimit      int       `json:"usage_limit"`
	UsedCount       int       `json:"used_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// EventToResponse renders an event with the discount already resolved for the
// requesting user, so every screen shows the same number.
func EventToResponse(event *entity.Event, discountPercent int, discountReason string, effectiveFee int) EventResponse {
	return EventResponse{
		ID:              event.ID.String(),
		Name:            event.Name,
		Description:     event.Description,
		Category:        string(event.Category),
		Venue:           event.Venue,
		Fee:             event.Fee,
		DiscountPercent: discountPercent,
		DiscountReason:  discountReason,
		EffectiveFee:    effectiveFee,
		RoundOneDate:    event.RoundOneDate.Format("2006-01-02"),
	}
}

func PassToResponse(pass *entity.Pass) PassResponse {
	return PassResponse{
		ID:          pass.ID.String(),
		Name:        pass.Name,
		Description: pass.Description,
		Category:    string(pass.Category),
		Cost:        pass.Cost,
	}
}

func AccommodationToResponse(acc *entity.Accommodation) AccommodationResponse {
	return AccommodationResponse{
		ID:             acc.ID.String(),
		Name:           acc.Name,
		Description:    acc.Description,
		CostPerNight:   acc.CostPerNight,
		RoomsAvailable: acc.RoomsAvailable,
	}
}

func CouponToResponse(coupon *entity.Coupon) CouponResponse {
	return CouponResponse{
		ID:              coupon.ID.String(),
		Code:            coupon.Code,
		DiscountPercent: coupon.DiscountPercent,
		UsageLimit:      coupon.UsageLimit,
		UsedCount:       coupon.UsedCount,
		CreatedAt:       coupon.CreatedAt,
	}
}
