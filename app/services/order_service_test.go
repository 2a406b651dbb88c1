package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/pricing"
	"github.com/shashiranjanraj/foodhub/pkg/audit"
	"github.com/shashiranjanraj/foodhub/pkg/event"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newOrderService(items ...*models.FoodItem) (*OrderService, *fakeOrders, *audit.MemorySink) {
	orders := newFakeOrders()
	bus := event.New()
	sink := audit.NewMemorySink(0)
	audit.Subscribe(bus, sink, OrderEvents...)

	svc := NewOrderService(newFakeMenu(items...), orders, bus)
	svc.now = func() time.Time { return fixedNow }
	return svc, orders, sink
}

func pnc() *pricing.Coupon {
	return &pricing.Coupon{Code: "PNC", Discount: dec("0.20")}
}

func TestPlacePersistsPricedOrder(t *testing.T) {
	svc, orders, sink := newOrderService(food(1, "100", "10"))

	placed, err := svc.Place(context.Background(), "ada", 1, OrderForm{
		CustomerName:   "Ada",
		Quantity:       "3",
		DeliveryOption: "delivery",
		Address:        "1 Main St",
	}, pnc())
	require.NoError(t, err)

	assert.EqualValues(t, 1, placed.ID)
	assert.Equal(t, "72.00", placed.UnitPrice.StringFixed(2))

	row := orders.rows[placed.ID]
	require.NotNil(t, row)
	assert.Equal(t, "216.00", row.TotalPrice.StringFixed(2))
	assert.Equal(t, 3, row.Quantity)
	assert.Equal(t, "ada", row.Username)
	assert.Equal(t, "1 Main St", row.Address)
	assert.Equal(t, models.StatusPending, row.Status)
	assert.Equal(t, fixedNow, row.OrderDate)

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, EventOrderPlaced, entries[0].Event)
	assert.Equal(t, placed.ID, entries[0].OrderID)
	assert.Equal(t, "PNC", entries[0].Detail["coupon"])
}

func TestPlaceDefaults(t *testing.T) {
	svc, orders, _ := newOrderService(food(1, "50", ""))

	placed, err := svc.Place(context.Background(), "ada", 1, OrderForm{Address: "1 Main St"}, nil)
	require.NoError(t, err)

	row := orders.rows[placed.ID]
	assert.Equal(t, 1, row.Quantity)
	assert.Equal(t, models.DeliveryOptionDelivery, row.DeliveryOption)
	assert.Equal(t, "1 Main St", row.Address)
	assert.Equal(t, "50.00", row.TotalPrice.StringFixed(2))
}

func TestPlaceWithCouponOnly(t *testing.T) {
	svc, orders, _ := newOrderService(food(1, "50", ""))

	placed, err := svc.Place(context.Background(), "ada", 1, OrderForm{Quantity: "1"}, pnc())
	require.NoError(t, err)
	assert.Equal(t, "40.00", orders.rows[placed.ID].TotalPrice.StringFixed(2))
}

func TestPlaceNormalisesDelivery(t *testing.T) {
	svc, orders, _ := newOrderService(food(1, "10", ""))

	placed, err := svc.Place(context.Background(), "ada", 1, OrderForm{
		Quantity:        "1",
		DeliveryOption:  "pickup",
		DeliveryService: "other",
		OtherService:    "Bike Co",
		Address:         "should be dropped",
	}, nil)
	require.NoError(t, err)

	row := orders.rows[placed.ID]
	assert.Equal(t, "Bike Co", row.DeliveryService)
	assert.Empty(t, row.Address)
}

func TestPlaceOtherServiceWithoutTextKeepsOther(t *testing.T) {
	svc, orders, _ := newOrderService(food(1, "10", ""))

	placed, err := svc.Place(context.Background(), "ada", 1, OrderForm{DeliveryService: "other"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "other", orders.rows[placed.ID].DeliveryService)
}

func TestPlaceRejectsBadQuantity(t *testing.T) {
	for _, qty := range []FormText{"0", "abc", "-2", "1.5"} {
		t.Run(string(qty), func(t *testing.T) {
			svc, orders, sink := newOrderService(food(1, "100", "10"))

			_, err := svc.Place(context.Background(), "ada", 1, OrderForm{Quantity: qty}, pnc())
			require.ErrorIs(t, err, ErrInvalidQuantity)

			var qe *QuantityError
			require.True(t, errors.As(err, &qe))
			assert.Equal(t, "72.00", qe.Food.DiscountedPrice.StringFixed(2))
			assert.Equal(t, "PNC", qe.Coupon.Code)

			assert.Zero(t, orders.inserts)
			assert.Empty(t, sink.Entries())
		})
	}
}

func TestPlaceUnknownFood(t *testing.T) {
	svc, orders, _ := newOrderService()

	_, err := svc.Place(context.Background(), "ada", 9, OrderForm{Quantity: "1"}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, orders.inserts)
}

func TestPlaceInsertFailure(t *testing.T) {
	svc, orders, sink := newOrderService(food(1, "10", ""))
	orders.insertErr = errDown

	_, err := svc.Place(context.Background(), "ada", 1, OrderForm{Quantity: "2"}, nil)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, errDown)
	assert.Empty(t, orders.rows)
	assert.Empty(t, sink.Entries())
}

func TestGetHidesOtherUsersOrders(t *testing.T) {
	svc, _, _ := newOrderService(food(1, "10", ""))
	placed, err := svc.Place(context.Background(), "ada", 1, OrderForm{}, nil)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), placed.ID, "bob")
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := svc.Get(context.Background(), placed.ID, "ada")
	require.NoError(t, err)
	assert.Equal(t, placed.ID, v.ID)

	_, err = svc.Get(context.Background(), placed.ID, "")
	assert.NoError(t, err)
}

func TestPayDefaultsToCash(t *testing.T) {
	svc, _, sink := newOrderService(food(1, "10", ""))
	placed, err := svc.Place(context.Background(), "ada", 1, OrderForm{}, nil)
	require.NoError(t, err)

	v, err := svc.Pay(context.Background(), placed.ID, "ada", "")
	require.NoError(t, err)
	require.NotNil(t, v.PaymentMethod)
	assert.Equal(t, "Cash", *v.PaymentMethod)
	require.NotNil(t, v.PaymentDate)
	assert.Equal(t, fixedNow, *v.PaymentDate)

	entries := sink.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, EventOrderPaid, entries[1].Event)

	_, err = svc.Pay(context.Background(), 99, "ada", "Card")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	svc, orders, _ := newOrderService(food(1, "10", ""))
	placed, err := svc.Place(context.Background(), "ada", 1, OrderForm{}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), placed.ID, models.StatusDelivered, "admin"))
	assert.Equal(t, models.StatusDelivered, orders.rows[placed.ID].Status)

	err = svc.UpdateStatus(context.Background(), placed.ID, "Lost", "admin")
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.UpdateStatus(context.Background(), 99, models.StatusDelivered, "admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, orders, _ := newOrderService(food(1, "10", ""))
	a, err := svc.Place(context.Background(), "ada", 1, OrderForm{}, nil)
	require.NoError(t, err)
	_, err = svc.Place(context.Background(), "ada", 1, OrderForm{}, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), 99, "", "admin"), ErrNotFound)
	assert.Len(t, orders.rows, 2)

	assert.ErrorIs(t, svc.Delete(context.Background(), a.ID, "bob", "bob"), ErrNotFound)
	assert.Len(t, orders.rows, 2)

	require.NoError(t, svc.Delete(context.Background(), a.ID, "ada", "ada"))
	assert.Len(t, orders.rows, 1)
}

func TestListScopesByUser(t *testing.T) {
	svc, _, _ := newOrderService(food(1, "10", ""))
	for _, u := range []string{"ada", "ada", "bob"} {
		_, err := svc.Place(context.Background(), u, 1, OrderForm{}, nil)
		require.NoError(t, err)
	}

	mine, err := svc.List(context.Background(), "ada")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFormTextAcceptsNumbers(t *testing.T) {
	var f OrderForm
	require.NoError(t, json.Unmarshal([]byte(`{"quantity": 3}`), &f))
	assert.Equal(t, "3", f.Quantity.String())

	require.NoError(t, json.Unmarshal([]byte(`{"quantity": " 4 "}`), &f))
	assert.Equal(t, "4", f.Quantity.String())
}
