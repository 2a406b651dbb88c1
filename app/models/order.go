package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses managed from the admin screen.
const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusOutForDel = "Out for delivery"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

const (
	// DeliveryOptionDelivery is the only option that keeps an address.
	DeliveryOptionDelivery = "delivery"
	// DeliveryServiceOther selects the free-text delivery service.
	DeliveryServiceOther = "other"

	DefaultPaymentMethod = "Cash"
)

// Statuses lists the valid order statuses in workflow order.
var Statuses = []string{StatusPending, StatusPreparing, StatusOutForDel, StatusDelivered, StatusCancelled}

// Order is a placed purchase of one food item. TotalPrice is frozen at
// placement; afterwards only the payment fields and Status change.
type Order struct {
	ID              uint            `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	Username        string          `gorm:"size:100;index"                           json:"username"`
	CustomerName    string          `gorm:"size:255"                                 json:"customer_name"`
	Phone           string          `gorm:"size:50"                                  json:"phone"`
	Address         string          `gorm:"type:text"                                json:"address"`
	Note            string          `gorm:"type:text"                                json:"note"`
	FoodID          uint            `gorm:"not null;index"                           json:"food_id"`
	Quantity        int             `gorm:"not null"                                 json:"quantity"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"              json:"total_price"`
	DeliveryOption  string          `gorm:"size:50"                                  json:"delivery_option"`
	DeliveryService string          `gorm:"size:100"                                 json:"delivery_service"`
	Status          string          `gorm:"size:50;not null;default:Pending;index"   json:"status"`
	OrderDate       time.Time       `gorm:"not null;index"                           json:"order_date"`
	PaymentDate     *time.Time      `                                                json:"payment_date"`
	PaymentMethod   *string         `gorm:"size:50"                                  json:"payment_method"`
}

func (Order) TableName() string { return "orders" }

// Paid reports whether a payment has been recorded.
func (o Order) Paid() bool { return o.PaymentDate != nil }

// OrderView is an order joined with the food it references.
type OrderView struct {
	Order
	FoodName string  `gorm:"column:food_name" json:"food_name"`
	ImageURL *string `gorm:"column:image_url" json:"image_url"`
}

// ValidStatus reports whether s is one of Statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}
