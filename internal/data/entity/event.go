package entity

import "time"

type EventCategory string

const (
	EventCategoryTechnical    EventCategory = "technical"
	EventCategoryWorkshop     EventCategory = "workshop"
	EventCategoryNonTechnical EventCategory = "non_technical"
)

type Event struct {
	Base
	Name               string        `db:"name"`
	Description        string        `db:"description"`
	Category           EventCategory `db:"category"`
	Venue              string        `db:"venue"`
	Fee                int           `db:"fee"`
	DiscountPercent    int           `db:"discount_percent"`
	MITDiscountPercent int           `db:"mit_discount_percent"`
	DiscountReason     string        `db:"discount_reason"`
	RoundOneDate       time.Time     `db:"round_one_date"`
}
