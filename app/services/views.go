package services

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/pricing"
)

// PricedFood is a menu item with the price the caller would pay now.
type PricedFood struct {
	models.FoodItem
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
}

func priced(foods []models.FoodItem, coupon *pricing.Coupon) []PricedFood {
	out := make([]PricedFood, len(foods))
	for i, f := range foods {
		out[i] = PricedFood{FoodItem: f, DiscountedPrice: pricing.Price(f, coupon)}
	}
	return out
}

// FormText is a form field that JSON clients may send as a string or a
// number ({"quantity": 3} and {"quantity": "3"} are the same).
type FormText string

func (t *FormText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = FormText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = FormText(n.String())
	return nil
}

func (t FormText) String() string { return strings.TrimSpace(string(t)) }
