package models

import "github.com/shopspring/decimal"

// FoodItem is one row of the menu.
type FoodItem struct {
	ID              uint                `gorm:"column:food_id;primaryKey;autoIncrement" json:"food_id"`
	Name            string              `gorm:"column:food_name;size:255;not null"      json:"food_name"`
	Category        string              `gorm:"size:100;not null;index"                 json:"category"`
	Price           decimal.Decimal     `gorm:"type:decimal(10,2);not null"             json:"price"`
	DiscountPercent decimal.NullDecimal `gorm:"type:decimal(5,2)"                       json:"discount_percent"`
	Available       bool                `gorm:"not null;index"                          json:"available"`
	ImageURL        *string             `gorm:"size:512"                                json:"image_url"`
}

func (FoodItem) TableName() string { return "food" }

// Discount returns the item discount percentage, zero when unset.
func (f FoodItem) Discount() decimal.Decimal {
	if !f.DiscountPercent.Valid {
		return decimal.Zero
	}
	return f.DiscountPercent.Decimal
}
