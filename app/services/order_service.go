package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/pricing"
	"github.com/shashiranjanraj/foodhub/pkg/event"
	"github.com/shashiranjanraj/foodhub/pkg/logger"
	"github.com/shashiranjanraj/foodhub/pkg/metrics"
)

// CatalogStore looks up menu items. FindFood returns (nil, nil) when the id
// is unknown.
type CatalogStore interface {
	FindFood(ctx context.Context, id uint) (*models.FoodItem, error)
}

// OrderStore persists orders. Every write is atomic.
type OrderStore interface {
	InsertOrder(ctx context.Context, o *models.Order) (uint, error)
	FindView(ctx context.Context, id uint) (*models.OrderView, error)
	ListViews(ctx context.Context, username string) ([]models.OrderView, error)
	RecordPayment(ctx context.Context, id uint, method string, at time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id uint, status string) (bool, error)
	DeleteOrder(ctx context.Context, id uint, owner string) (bool, error)
}

// OrderForm is what the order page posts.
type OrderForm struct {
	CustomerName    string   `form:"customer_name"    json:"customer_name"    validate:"max=255"`
	Phone           string   `form:"phone"            json:"phone"            validate:"max=50"`
	Quantity        FormText `form:"quantity"         json:"quantity"`
	DeliveryOption  string   `form:"delivery_option"  json:"delivery_option"  validate:"max=50"`
	DeliveryService string   `form:"delivery_service" json:"delivery_service" validate:"max=100"`
	OtherService    string   `form:"other_service"    json:"other_service"    validate:"max=100"`
	Address         string   `form:"address"          json:"address"`
	Note            string   `form:"note"             json:"note"`
}

// PlacedOrder is the confirmed result of Place.
type PlacedOrder struct {
	ID        uint            `json:"order_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Order     *models.Order   `json:"order"`
}

// OrderService places orders and manages them afterwards.
type OrderService struct {
	catalog CatalogStore
	orders  OrderStore
	events  *event.Bus
	now     func() time.Time
}

// NewOrderService wires the stores. events may be nil.
func NewOrderService(catalog CatalogStore, orders OrderStore, events *event.Bus) *OrderService {
	return &OrderService{catalog: catalog, orders: orders, events: events, now: time.Now}
}

// Place validates the form, prices the item with coupon and persists one
// order for username. Nothing is written unless every check passes.
func (s *OrderService) Place(ctx context.Context, username string, foodID uint, form OrderForm, coupon *pricing.Coupon) (*PlacedOrder, error) {
	log := logger.WithCtx(ctx)

	food, err := s.catalog.FindFood(ctx, foodID)
	if err != nil {
		return nil, fmt.Errorf("order: find food %d: %w", foodID, err)
	}
	if food == nil {
		metrics.OrdersRejected.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("order: food %d: %w", foodID, ErrNotFound)
	}

	unit := pricing.Price(*food, coupon)

	raw := form.Quantity.String()
	if raw == "" {
		raw = "1"
	}
	qty, err := strconv.Atoi(raw)
	if err != nil || qty <= 0 {
		metrics.OrdersRejected.WithLabelValues("quantity").Inc()
		return nil, &QuantityError{
			Input:  raw,
			Food:   PricedFood{FoodItem: *food, DiscountedPrice: unit},
			Coupon: coupon,
		}
	}

	option := strings.TrimSpace(form.DeliveryOption)
	if option == "" {
		option = models.DeliveryOptionDelivery
	}
	service := strings.TrimSpace(form.DeliveryService)
	if other := strings.TrimSpace(form.OtherService); service == models.DeliveryServiceOther && other != "" {
		service = other
	}
	address := ""
	if option == models.DeliveryOptionDelivery {
		address = strings.TrimSpace(form.Address)
	}

	order := &models.Order{
		Username:        username,
		CustomerName:    strings.TrimSpace(form.CustomerName),
		Phone:           strings.TrimSpace(form.Phone),
		Address:         address,
		Note:            strings.TrimSpace(form.Note),
		FoodID:          food.ID,
		Quantity:        qty,
		TotalPrice:      pricing.Round2(pricing.LineTotal(unit, qty)),
		DeliveryOption:  option,
		DeliveryService: service,
		Status:          models.StatusPending,
		OrderDate:       s.now(),
	}

	id, err := s.orders.InsertOrder(ctx, order)
	if err != nil {
		metrics.OrdersRejected.WithLabelValues("persistence").Inc()
		log.Error("order insert failed", "food_id", food.ID, "error", err)
		return nil, fmt.Errorf("order: insert: %w: %w", ErrPersistence, err)
	}
	order.ID = id

	metrics.RecordOrder(option, coupon != nil, order.TotalPrice.InexactFloat64())
	detail := map[string]string{
		"food_id":  strconv.FormatUint(uint64(food.ID), 10),
		"quantity": strconv.Itoa(qty),
		"total":    order.TotalPrice.StringFixed(2),
	}
	if coupon != nil {
		detail["coupon"] = coupon.Code
	}
	fire(ctx, s.events, OrderEvent{Name: EventOrderPlaced, OrderID: id, Actor: username, Detail: detail})
	log.Info("order placed", "order_id", id, "total", order.TotalPrice.StringFixed(2))

	return &PlacedOrder{ID: id, UnitPrice: unit, Order: order}, nil
}

// Get returns the order with its food. A non-empty owner hides other users'
// orders.
func (s *OrderService) Get(ctx context.Context, id uint, owner string) (*models.OrderView, error) {
	v, err := s.orders.FindView(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order: get %d: %w", id, err)
	}
	if v == nil || (owner != "" && v.Username != owner) {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return v, nil
}

// List returns orders newest first; an empty username lists all of them.
func (s *OrderService) List(ctx context.Context, username string) ([]models.OrderView, error) {
	views, err := s.orders.ListViews(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("order: list: %w", err)
	}
	return views, nil
}

// Pay records a payment by method (Cash when empty) stamped now.
func (s *OrderService) Pay(ctx context.Context, id uint, owner, method string) (*models.OrderView, error) {
	if _, err := s.Get(ctx, id, owner); err != nil {
		return nil, err
	}

	method = strings.TrimSpace(method)
	if method == "" {
		method = models.DefaultPaymentMethod
	}
	if len(method) > 50 {
		return nil, invalid("payment_method", "The payment_method must not exceed 50 characters.")
	}

	ok, err := s.orders.RecordPayment(ctx, id, method, s.now())
	if err != nil {
		logger.WithCtx(ctx).Error("payment update failed", "order_id", id, "error", err)
		return nil, fmt.Errorf("order: pay %d: %w: %w", id, ErrPersistence, err)
	}
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}

	metrics.PaymentsRecorded.WithLabelValues(method).Inc()
	fire(ctx, s.events, OrderEvent{
		Name:    EventOrderPaid,
		OrderID: id,
		Actor:   owner,
		Detail:  map[string]string{"method": method},
	})
	return s.Get(ctx, id, "")
}

// UpdateStatus moves the order to status, which must be one of
// models.Statuses.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status, actor string) error {
	status = strings.TrimSpace(status)
	if !models.ValidStatus(status) {
		return invalid("status", "The selected status is invalid.")
	}

	ok, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("order: status %d: %w: %w", id, ErrPersistence, err)
	}
	if !ok {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}

	fire(ctx, s.events, OrderEvent{
		Name:    EventOrderStatusChanged,
		OrderID: id,
		Actor:   actor,
		Detail:  map[string]string{"status": status},
	})
	return nil
}

// Delete removes exactly one order. A non-empty owner restricts the delete
// to that user's orders; anything else is reported as not found.
func (s *OrderService) Delete(ctx context.Context, id uint, owner, actor string) error {
	ok, err := s.orders.DeleteOrder(ctx, id, owner)
	if err != nil {
		logger.WithCtx(ctx).Error("order delete failed", "order_id", id, "error", err)
		return fmt.Errorf("order: delete %d: %w: %w", id, ErrPersistence, err)
	}
	if !ok {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}

	fire(ctx, s.events, OrderEvent{Name: EventOrderDeleted, OrderID: id, Actor: actor})
	return nil
}
