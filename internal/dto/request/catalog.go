package request

type EventRequest struct {
	Name               string `json:"name" validate:"required,min=2,max=150"`
	Description        string `json:"description" validate:"max=2000"`
	Category           string `json:"category" validate:"required,oneof=technical workshop non_technical"`
	Venue              string `json:"venue" validate:"max=150"`
	Fee                int    `json:"fee" validate:"min=0"`
	DiscountPercent    int    `json:"discount_percent" validate:"min=0,max=100"`
	MITDiscountPercent int    `json:"mit_discount_percent" validate:"min=0,max=100"`
	DiscountReason     string `json:"discount_reason" validate:"max=150"`
	RoundOneDate       string `json:"round_one_date" validate:"required,datetime=2006-01-02"`
}

type PassRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category" validate:"required,oneof=tech workshop global"`
	Cost        int    `json:"cost" validate:"min=0"`
}

type AccommodationRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=150"`
	Description    string `json:"description" validate:"max=2000"`
	CostPerNight   int    `json:"cost_per_night" validate:"min=0"`
	RoomsAvailable int    `json:"rooms_available" validate:"min=0"`
}

type CouponRequest struct {
	Code            string `json:"code" validate:"required,min=1,max=50"`
	DiscountPercent int    `json:"discount_percent" validate:"required,min=1,max=100"`
	UsageLimit      int    `json:"usage_limit" validate:"required,min=1"`
}
