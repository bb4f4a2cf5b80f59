package usecase

import (
	"strings"
	"unicode"

	"symposium-registration/internal/data/entity"
)

// Pricing rules for the symposium. All discount arithmetic lives here and
// nowhere else; cart, checkout and catalog views all go through these
// functions so the numbers cannot drift apart.

const mitDiscountReason = "MIT Student Special Discount"

// NormalizeInstitution strips everything that is not a letter or digit and
// lowercases the rest, so "M.I.T." and "mit" compare equal.
func NormalizeInstitution(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// IsHostInstitution reports whether the declared college is the organizing
// institution.
func IsHostInstitution(college, host string) bool {
	return NormalizeInstitution(college) == NormalizeInstitution(host)
}

// EventDiscount resolves the discount for an event. Host-institution students
// get the MIT-only discount when one is set and non-zero; everyone else gets
// the general discount. The MIT-only discount never applies to outsiders.
func EventDiscount(event *entity.Event, hostInstitution bool) (percent int, reason string) {
	if hostInstitution && event.MITDiscountPercent > 0 {
		return event.MITDiscountPercent, mitDiscountReason
	}
	if event.DiscountPercent > 0 {
		return event.DiscountPercent, event.DiscountReason
	}
	return 0, ""
}

// EffectivePrice is floor(base * (1 - percent/100)). Flooring, not rounding,
// is the required numeric policy.
func EffectivePrice(baseCost, percent int) int {
	if percent <= 0 {
		return baseCost
	}
	if percent >= 100 {
		return 0
	}
	return baseCost * (100 - percent) / 100
}

// ApplyCoupon applies a flat percentage over the cart total. The coupon does
// not compound per item.
func ApplyCoupon(total, percent int) int {
	return EffectivePrice(total, percent)
}

// LinePayable is what a single cart line costs after its own discount.
// Accommodation lines multiply the nightly cost by the number of nights
// before discounting.
func LinePayable(item *entity.CartItem) int {
	base := item.BaseCost
	if item.Kind == entity.CartItemAccommodation && item.Quantity > 1 {
		base = item.BaseCost * item.Quantity
	}
	return EffectivePrice(base, item.DiscountPercent)
}

// CartTotal sums line payables. Coupons are applied on top of this by the
// caller.
func CartTotal(items []*entity.CartItem) int {
	total := 0
	for _, item := range items {
		total += LinePayable(item)
	}
	return total
}
