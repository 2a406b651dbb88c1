// Package pricing computes what a menu item costs: the item's own discount
// first, then the session coupon, rounded to cents.
//
// Rounding is half away from zero at 2 places (2.675 → 2.68), applied to
// every computed amount. Round2 is idempotent, so amounts can be rounded
// again before they are persisted without drifting.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/foodhub/app/models"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Coupon is a session-wide discount. Discount is a fraction in [0,1].
type Coupon struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
}

// Percent returns the discount as a whole percentage (0.2 → 20).
func (c Coupon) Percent() decimal.Decimal {
	return c.Discount.Mul(hundred)
}

// Price returns the unit price of food with coupon applied (nil for none).
//
// Malformed inputs never fail: a negative base price counts as 0, and an
// item discount outside [0,100] or a coupon discount outside [0,1] falls
// back to the rounded base price.
func Price(food models.FoodItem, coupon *Coupon) decimal.Decimal {
	base := food.Price
	if base.IsNegative() {
		base = decimal.Zero
	}

	disc := food.Discount()
	if disc.IsNegative() || disc.GreaterThan(hundred) {
		return Round2(base)
	}

	price := base
	if disc.IsPositive() {
		price = price.Mul(one.Sub(disc.Div(hundred)))
	}

	if coupon != nil {
		if coupon.Discount.IsNegative() || coupon.Discount.GreaterThan(one) {
			return Round2(base)
		}
		price = price.Mul(one.Sub(coupon.Discount))
	}

	return Round2(price)
}

// LineTotal is unit * qty rounded to cents.
func LineTotal(unit decimal.Decimal, qty int) decimal.Decimal {
	return Round2(unit.Mul(decimal.NewFromInt(int64(qty))))
}

// Round2 rounds half away from zero to 2 decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ParseAmount reads a price or percentage typed into a form or seed file.
// Text that is not a number yields 0.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
