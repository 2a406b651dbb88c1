package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/pkg/metrics"
	"github.com/shashiranjanraj/foodhub/pkg/orm"
)

// OrderRepository reads and writes the orders table.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const viewColumns = "orders.*, food.food_name, food.image_url"

func (r *OrderRepository) views(ctx context.Context) *orm.Query {
	return orm.New(ctx, r.db).Model(&models.Order{}).
		Select(viewColumns).
		Joins("LEFT JOIN food ON food.food_id = orders.food_id")
}

// InsertOrder persists o in its own transaction and returns the new id.
// Nothing is left behind when it fails.
func (r *OrderRepository) InsertOrder(ctx context.Context, o *models.Order) (uint, error) {
	defer metrics.ObserveDBQuery("insert_order", time.Now())

	err := orm.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
	if err != nil {
		return 0, err
	}
	return o.ID, nil
}

// FindView returns the order joined with its food, or (nil, nil).
func (r *OrderRepository) FindView(ctx context.Context, id uint) (*models.OrderView, error) {
	defer metrics.ObserveDBQuery("find_order", time.Now())

	var views []models.OrderView
	if err := r.views(ctx).Where("orders.order_id = ?", id).Limit(1).Scan(&views); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

// ListViews returns orders newest first. An empty username lists every
// order.
func (r *OrderRepository) ListViews(ctx context.Context, username string) ([]models.OrderView, error) {
	defer metrics.ObserveDBQuery("list_orders", time.Now())

	q := r.views(ctx)
	if username != "" {
		q = q.Where("orders.username = ?", username)
	}
	var views []models.OrderView
	return views, q.Order("orders.order_date DESC").Order("orders.order_id DESC").Scan(&views)
}

// RecordPayment sets the payment method and date. It reports false when no
// row has id.
func (r *OrderRepository) RecordPayment(ctx context.Context, id uint, method string, at time.Time) (bool, error) {
	defer metrics.ObserveDBQuery("pay_order", time.Now())

	return r.update(ctx, id, map[string]interface{}{
		"payment_method": method,
		"payment_date":   at,
	})
}

// UpdateStatus sets the workflow status. It reports false when no row has
// id.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status string) (bool, error) {
	defer metrics.ObserveDBQuery("update_order_status", time.Now())

	return r.update(ctx, id, map[string]interface{}{"status": status})
}

func (r *OrderRepository) update(ctx context.Context, id uint, cols map[string]interface{}) (bool, error) {
	var found bool
	err := orm.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Order{}).Where("order_id = ?", id).Count(&n).Error; err != nil || n == 0 {
			return err
		}
		found = true
		return tx.Model(&models.Order{}).Where("order_id = ?", id).Updates(cols).Error
	})
	return found, err
}

// DeleteOrder removes the order. A non-empty owner restricts the delete to
// that user's orders. It reports false when nothing matched.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id uint, owner string) (bool, error) {
	defer metrics.ObserveDBQuery("delete_order", time.Now())

	var n int64
	err := orm.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		q := tx.Where("order_id = ?", id)
		if owner != "" {
			q = q.Where("username = ?", owner)
		}
		res := q.Delete(&models.Order{})
		n = res.RowsAffected
		return res.Error
	})
	return n > 0, err
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalOrders   int64           `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	PendingOrders int64           `json:"pending_orders"`
	PaidOrders    int64           `json:"paid_orders"`
	Recent        []models.Order  `json:"recent_orders"`
}

// Stats summarises every order; recent is how many of the newest orders to
// include.
func (r *OrderRepository) Stats(ctx context.Context, recent int) (*Stats, error) {
	defer metrics.ObserveDBQuery("order_stats", time.Now())

	var (
		s   Stats
		err error
	)
	base := func() *orm.Query { return orm.New(ctx, r.db).Model(&models.Order{}) }

	if s.TotalOrders, err = base().Count(); err != nil {
		return nil, err
	}
	if s.PendingOrders, err = base().Where("status = ?", models.StatusPending).Count(); err != nil {
		return nil, err
	}
	if s.PaidOrders, err = base().Where("payment_date IS NOT NULL").Count(); err != nil {
		return nil, err
	}

	var sum struct{ Total decimal.NullDecimal }
	if err := base().Select("SUM(total_price) AS total").Scan(&sum); err != nil {
		return nil, err
	}
	s.TotalRevenue = decimal.Zero
	if sum.Total.Valid {
		s.TotalRevenue = sum.Total.Decimal.Round(2)
	}

	if err := base().Order("order_date DESC").Order("order_id DESC").Limit(recent).Get(&s.Recent); err != nil {
		return nil, err
	}
	return &s, nil
}
