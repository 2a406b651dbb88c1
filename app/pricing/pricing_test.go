package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func food(price, discount string) models.FoodItem {
	f := models.FoodItem{Price: dec(price)}
	if discount != "" {
		f.DiscountPercent = decimal.NewNullDecimal(dec(discount))
	}
	return f
}

func pnc() *pricing.Coupon {
	return &pricing.Coupon{Code: "PNC", Discount: dec("0.2")}
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestPriceWithoutDiscountIsRoundedBase(t *testing.T) {
	for _, base := range []string{"0", "12", "9.99", "10.005", "123.456"} {
		f := food(base, "0")
		assertMoney(t, dec(base).Round(2).String(), pricing.Price(f, nil))

		f = food(base, "")
		assertMoney(t, dec(base).Round(2).String(), pricing.Price(f, nil))
	}
}

func TestPriceItemDiscountThenCoupon(t *testing.T) {
	assertMoney(t, "72.00", pricing.Price(food("100", "10"), pnc()))
}

func TestPriceCouponOnly(t *testing.T) {
	assertMoney(t, "40.00", pricing.Price(food("50", ""), pnc()))
}

func TestPriceItemDiscountOnly(t *testing.T) {
	assertMoney(t, "7.49", pricing.Price(food("9.99", "25"), nil))
}

func TestPriceRoundsHalfAwayFromZero(t *testing.T) {
	assertMoney(t, "2.68", pricing.Price(food("2.675", ""), nil))
	assertMoney(t, "2.68", pricing.Round2(dec("2.675")))
	assertMoney(t, "-2.68", pricing.Round2(dec("-2.675")))
}

func TestPriceFailSoft(t *testing.T) {
	cases := []struct {
		name   string
		food   models.FoodItem
		coupon *pricing.Coupon
		want   string
	}{
		{"negative base", food("-5", ""), nil, "0"},
		{"missing base", models.FoodItem{}, pnc(), "0"},
		{"discount above 100", food("19.999", "150"), pnc(), "20.00"},
		{"negative discount", food("20", "-10"), nil, "20"},
		{"coupon above 1", food("100", "10"), &pricing.Coupon{Code: "X", Discount: dec("1.5")}, "100"},
		{"negative coupon", food("100", ""), &pricing.Coupon{Code: "X", Discount: dec("-0.1")}, "100"},
		{"full discount", food("30", "100"), nil, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assertMoney(t, tc.want, pricing.Price(tc.food, tc.coupon))
			})
		})
	}
}

func TestLineTotal(t *testing.T) {
	assertMoney(t, "216.00", pricing.LineTotal(dec("72.00"), 3))
	assertMoney(t, "0.03", pricing.LineTotal(dec("0.01"), 3))
}

func TestRound2Idempotent(t *testing.T) {
	for _, s := range []string{"1.005", "72", "0.125", "99.994999"} {
		once := pricing.Round2(dec(s))
		assert.True(t, once.Equal(pricing.Round2(once)), s)
	}
}

func TestParseAmount(t *testing.T) {
	assertMoney(t, "12.5", pricing.ParseAmount(" 12.50 "))
	assertMoney(t, "0", pricing.ParseAmount("abc"))
	assertMoney(t, "0", pricing.ParseAmount(""))
}

func TestCouponPercent(t *testing.T) {
	assertMoney(t, "20", pnc().Percent())
}
