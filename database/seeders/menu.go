package seeders

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/pricing"
	"github.com/shashiranjanraj/foodhub/app/repositories"
)

func init() {
	Register("menu", seedMenu)
}

var sampleMenu = []struct {
	name, category, price, discount string
}{
	{"Margherita Pizza", "Pizza", "12.50", "10"},
	{"Pepperoni Pizza", "Pizza", "14.00", ""},
	{"Chicken Burger", "Burgers", "9.99", "5"},
	{"Veggie Burger", "Burgers", "8.49", ""},
	{"Caesar Salad", "Salads", "7.25", ""},
	{"Chocolate Brownie", "Desserts", "4.50", "20"},
}

// seedMenu fills an empty food table with a sample menu.
func seedMenu(db *gorm.DB) error {
	ctx := context.Background()
	foods := repositories.NewFoodRepository(db)

	all, err := foods.All(ctx)
	if err != nil || len(all) > 0 {
		return err
	}

	for _, m := range sampleMenu {
		f := &models.FoodItem{
			Name:      m.name,
			Category:  m.category,
			Price:     pricing.ParseAmount(m.price),
			Available: true,
		}
		if m.discount != "" {
			f.DiscountPercent = decimal.NewNullDecimal(pricing.ParseAmount(m.discount))
		}
		if err := foods.Create(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
