package entity

type Coupon struct {
	Base
	Code            string `db:"code"`
	DiscountPercent int    `db:"discount_percent"`
	UsageLimit      int    `db:"usage_limit"`
	UsedCount       int    `db:"used_count"`
}

func (c *Coupon) Exhausted() bool {
	return c.UsedCount >= c.UsageLimit
}
