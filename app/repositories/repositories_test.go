package repositories_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/repositories"
	_ "github.com/shashiranjanraj/foodhub/database/migrations"
	"github.com/shashiranjanraj/foodhub/pkg/cache"
	"github.com/shashiranjanraj/foodhub/pkg/database"
	"github.com/shashiranjanraj/foodhub/pkg/migration"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	cache.Use(cache.NewMemoryStore())
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run())
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func addFood(t *testing.T, r *repositories.FoodRepository, name, category string, available bool) *models.FoodItem {
	t.Helper()
	f := &models.FoodItem{Name: name, Category: category, Price: dec("10.00"), Available: available}
	require.NoError(t, r.Create(context.Background(), f))
	require.NotZero(t, f.ID)
	return f
}

func TestFindFoodMissingIsNil(t *testing.T) {
	r := repositories.NewFoodRepository(newDB(t))

	f, err := r.FindFood(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestFoodCreateKeepsFalseAndNulls(t *testing.T) {
	ctx := context.Background()
	r := repositories.NewFoodRepository(newDB(t))
	created := addFood(t, r, "Soup", "Starters", false)

	got, err := r.FindFood(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Available)
	assert.False(t, got.DiscountPercent.Valid)
	assert.Nil(t, got.ImageURL)
	assert.True(t, got.Price.Equal(dec("10")))
}

func TestAvailableFiltersAndCategories(t *testing.T) {
	ctx := context.Background()
	r := repositories.NewFoodRepository(newDB(t))
	addFood(t, r, "Margherita Pizza", "Pizza", true)
	addFood(t, r, "Pepperoni Pizza", "Pizza", true)
	addFood(t, r, "Veggie Burger", "Burgers", true)
	addFood(t, r, "Hidden Cake", "Desserts", false)

	all, err := r.Available(ctx, "", "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pizzas, err := r.Available(ctx, "Pizza", "", 0)
	require.NoError(t, err)
	assert.Len(t, pizzas, 2)

	burgers, err := r.Available(ctx, "", "Burgers", 0)
	require.NoError(t, err)
	require.Len(t, burgers, 1)
	assert.Equal(t, "Veggie Burger", burgers[0].Name)

	first, err := r.Available(ctx, "", "", 2)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	cats, err := r.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Burgers", "Pizza"}, cats)
}

func TestFoodWritesFlushCategoryCache(t *testing.T) {
	ctx := context.Background()
	r := repositories.NewFoodRepository(newDB(t))
	addFood(t, r, "Tea", "Drinks", true)

	cats, err := r.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Drinks"}, cats)

	addFood(t, r, "Fries", "Sides", true)
	cats, err = r.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Drinks", "Sides"}, cats)
}

func TestFoodUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	r := repositories.NewFoodRepository(newDB(t))
	f := addFood(t, r, "Tea", "Drinks", true)

	f.Available = false
	f.Price = dec("2.50")
	ok, err := r.Update(ctx, f)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := r.FindFood(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.True(t, got.Price.Equal(dec("2.5")))

	ok, err = r.Update(ctx, &models.FoodItem{ID: 999, Name: "x", Category: "y"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func placeOrder(t *testing.T, r *repositories.OrderRepository, foodID uint, username string, at time.Time) uint {
	t.Helper()
	id, err := r.InsertOrder(context.Background(), &models.Order{
		Username:       username,
		CustomerName:   "Ada",
		FoodID:         foodID,
		Quantity:       2,
		TotalPrice:     dec("20.00"),
		DeliveryOption: models.DeliveryOptionDelivery,
		Status:         models.StatusPending,
		OrderDate:      at,
	})
	require.NoError(t, err)
	require.NotZero(t, id)
	return id
}

func TestOrderViewJoinsFood(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	food := addFood(t, repositories.NewFoodRepository(db), "Tea", "Drinks", true)
	r := repositories.NewOrderRepository(db)
	id := placeOrder(t, r, food.ID, "ada", time.Now())

	v, err := r.FindView(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, id, v.ID)
	assert.Equal(t, "Tea", v.FoodName)
	assert.Equal(t, 2, v.Quantity)
	assert.True(t, v.TotalPrice.Equal(dec("20")))
	assert.False(t, v.Paid())

	missing, err := r.FindView(ctx, id+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListViewsNewestFirstAndScoped(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	food := addFood(t, repositories.NewFoodRepository(db), "Tea", "Drinks", true)
	r := repositories.NewOrderRepository(db)

	now := time.Now()
	older := placeOrder(t, r, food.ID, "ada", now.Add(-time.Hour))
	newer := placeOrder(t, r, food.ID, "ada", now)
	placeOrder(t, r, food.ID, "bob", now)

	mine, err := r.ListViews(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer, mine[0].ID)
	assert.Equal(t, older, mine[1].ID)

	all, err := r.ListViews(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecordPaymentAndStatus(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	food := addFood(t, repositories.NewFoodRepository(db), "Tea", "Drinks", true)
	r := repositories.NewOrderRepository(db)
	id := placeOrder(t, r, food.ID, "ada", time.Now())

	ok, err := r.RecordPayment(ctx, id, "Card", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.UpdateStatus(ctx, id, models.StatusDelivered)
	require.NoError(t, err)
	assert.True(t, ok)

	v, err := r.FindView(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, v.PaymentMethod)
	assert.Equal(t, "Card", *v.PaymentMethod)
	assert.True(t, v.Paid())
	assert.Equal(t, models.StatusDelivered, v.Status)

	ok, err = r.RecordPayment(ctx, id+1, "Card", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteOrderRemovesExactlyOneRow(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	food := addFood(t, repositories.NewFoodRepository(db), "Tea", "Drinks", true)
	r := repositories.NewOrderRepository(db)
	a := placeOrder(t, r, food.ID, "ada", time.Now())
	placeOrder(t, r, food.ID, "ada", time.Now())

	ok, err := r.DeleteOrder(ctx, 999, "")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.DeleteOrder(ctx, a, "bob")
	require.NoError(t, err)
	assert.False(t, ok, "other users cannot delete")

	all, _ := r.ListViews(ctx, "")
	assert.Len(t, all, 2)

	ok, err = r.DeleteOrder(ctx, a, "ada")
	require.NoError(t, err)
	assert.True(t, ok)

	all, _ = r.ListViews(ctx, "")
	assert.Len(t, all, 1)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	r := repositories.NewOrderRepository(db)

	empty, err := r.Stats(ctx, 5)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalOrders)
	assert.True(t, empty.TotalRevenue.IsZero())

	food := addFood(t, repositories.NewFoodRepository(db), "Tea", "Drinks", true)
	id := placeOrder(t, r, food.ID, "ada", time.Now())
	placeOrder(t, r, food.ID, "ada", time.Now())
	_, err = r.UpdateStatus(ctx, id, models.StatusPreparing)
	require.NoError(t, err)

	s, err := r.Stats(ctx, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 2, s.TotalOrders)
	assert.EqualValues(t, 1, s.PendingOrders)
	assert.True(t, s.TotalRevenue.Equal(dec("40")), s.TotalRevenue.String())
	assert.Len(t, s.Recent, 2)
}

func TestUserCreateRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	r := repositories.NewUserRepository(newDB(t))

	require.NoError(t, r.Create(ctx, &models.User{Username: "ada", Password: "x", Email: "a@b.c", LoginType: models.LoginUser}))
	err := r.Create(ctx, &models.User{Username: "ada", Password: "y", Email: "d@e.f", LoginType: models.LoginUser})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	u, err := r.FindByUsername(ctx, "ada")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "a@b.c", u.Email)

	none, err := r.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestFeedbackCreate(t *testing.T) {
	ctx := context.Background()
	r := repositories.NewFeedbackRepository(newDB(t))

	require.NoError(t, r.Create(ctx, &models.Feedback{Name: "Ada", Email: "a@b.c", Message: "Great"}))
	latest, err := r.Latest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "Great", latest[0].Message)
}
