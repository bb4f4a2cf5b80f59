package usecase

import (
	"testing"

	"symposium-registration/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInstitution(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MIT", "mit"},
		{"M.I.T.", "mit"},
		{"  mit ", "mit"},
		{"M I T", "mit"},
		{"Some Other College", "someothercollege"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeInstitution(tt.in), "input %q", tt.in)
	}
}

func TestIsHostInstitution(t *testing.T) {
	assert.True(t, IsHostInstitution("M.I.T.", "MIT"))
	assert.True(t, IsHostInstitution("mit", "MIT"))
	assert.False(t, IsHostInstitution("MIT College of Engineering", "MIT"))
	assert.False(t, IsHostInstitution("", "MIT"))
}

func TestEventDiscount(t *testing.T) {
	event := &entity.Event{
		Fee:                1000,
		DiscountPercent:    10,
		MITDiscountPercent: 20,
		DiscountReason:     "Early Bird",
	}

	t.Run("host student gets the MIT discount", func(t *testing.T) {
		percent, reason := EventDiscount(event, true)
		assert.Equal(t, 20, percent)
		assert.Equal(t, "MIT Student Special Discount", reason)
	})

	t.Run("outsider gets the general discount", func(t *testing.T) {
		percent, reason := EventDiscount(event, false)
		assert.Equal(t, 10, percent)
		assert.Equal(t, "Early Bird", reason)
	})

	t.Run("host student falls back to general discount when no MIT discount is set", func(t *testing.T) {
		e := &entity.Event{Fee: 1000, DiscountPercent: 10, DiscountReason: "Early Bird"}
		percent, reason := EventDiscount(e, true)
		assert.Equal(t, 10, percent)
		assert.Equal(t, "Early Bird", reason)
	})

	t.Run("no discounts at all", func(t *testing.T) {
		e := &entity.Event{Fee: 1000}
		percent, reason := EventDiscount(e, true)
		assert.Equal(t, 0, percent)
		assert.Equal(t, "", reason)
	})
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name    string
		base    int
		percent int
		want    int
	}{
		{"twenty percent off 1000", 1000, 20, 800},
		{"ten percent off 1000", 1000, 10, 900},
		{"floors instead of rounding", 999, 10, 899},
		{"fifteen percent off 333", 333, 15, 283},
		{"zero percent", 1000, 0, 1000},
		{"negative percent treated as none", 1000, -5, 1000},
		{"full discount", 1000, 100, 0},
		{"over full discount clamps to zero", 1000, 150, 0},
		{"zero base", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectivePrice(tt.base, tt.percent))
		})
	}
}

func TestLinePayable(t *testing.T) {
	t.Run("event line applies its snapshot discount", func(t *testing.T) {
		item := &entity.CartItem{
			Kind:            entity.CartItemEvent,
			BaseCost:        1000,
			DiscountPercent: 20,
		}
		assert.Equal(t, 800, LinePayable(item))
	})

	t.Run("accommodation multiplies nights before discounting", func(t *testing.T) {
		item := &entity.CartItem{
			Kind:     entity.CartItemAccommodation,
			BaseCost: 500,
			Quantity: 3,
		}
		assert.Equal(t, 1500, LinePayable(item))
	})

	t.Run("pass line has no per-item discount", func(t *testing.T) {
		item := &entity.CartItem{
			Kind:     entity.CartItemPass,
			BaseCost: 750,
		}
		assert.Equal(t, 750, LinePayable(item))
	})
}

func TestCartTotalAndCoupon(t *testing.T) {
	items := []*entity.CartItem{
		{Kind: entity.CartItemEvent, BaseCost: 1000, DiscountPercent: 20},        // 800
		{Kind: entity.CartItemPass, BaseCost: 500},                               // 500
		{Kind: entity.CartItemAccommodation, BaseCost: 400, Quantity: 2},         // 800
	}

	total := CartTotal(items)
	assert.Equal(t, 2100, total)

	// A flat coupon applies once over the discounted total.
	assert.Equal(t, 1890, ApplyCoupon(total, 10))
	assert.Equal(t, 2100, ApplyCoupon(total, 0))
}

func TestCartTotalEmpty(t *testing.T) {
	assert.Equal(t, 0, CartTotal(nil))
}
