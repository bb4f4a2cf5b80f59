package request

type AddEventRequest struct {
	EventID string `json:"event_id" validate:"required,uuid4"`
}

type AddPassRequest struct {
	PassID string `json:"pass_id" validate:"required,uuid4"`
	// Required for workshop passes, ignored otherwise.
	WorkshopEventIDs []string `json:"workshop_event_ids,omitempty" validate:"omitempty,dive,uuid4"`
}

type AddAccommodationRequest struct {
	AccommodationID string `json:"accommodation_id" validate:"required,uuid4"`
	Nights          int    `json:"nights" validate:"required,min=1,max=10"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required,min=1,max=50"`
}
