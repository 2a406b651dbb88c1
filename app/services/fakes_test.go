package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/pricing"
	"github.com/shashiranjanraj/foodhub/app/repositories"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func food(id uint, price, discount string) *models.FoodItem {
	f := &models.FoodItem{ID: id, Name: "Dish", Category: "Mains", Price: dec(price), Available: true}
	if discount != "" {
		f.DiscountPercent = decimal.NewNullDecimal(dec(discount))
	}
	return f
}

// memCoupons is a CouponStore without a session.
type memCoupons struct {
	c *pricing.Coupon
}

func (m *memCoupons) Coupon() *pricing.Coupon    { return m.c }
func (m *memCoupons) SetCoupon(c pricing.Coupon) { m.c = &c }
func (m *memCoupons) ClearCoupon()               { m.c = nil }

// fakeMenu implements MenuStore over a map.
type fakeMenu struct {
	items map[uint]*models.FoodItem
	next  uint
	err   error
}

func newFakeMenu(items ...*models.FoodItem) *fakeMenu {
	m := &fakeMenu{items: map[uint]*models.FoodItem{}, next: 100}
	for _, f := range items {
		m.items[f.ID] = f
	}
	return m
}

func (m *fakeMenu) FindFood(_ context.Context, id uint) (*models.FoodItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	f, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (m *fakeMenu) sorted() []models.FoodItem {
	out := make([]models.FoodItem, 0, len(m.items))
	for _, f := range m.items {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *fakeMenu) Available(_ context.Context, search, category string, limit int) ([]models.FoodItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.FoodItem
	for _, f := range m.sorted() {
		if !f.Available || !strings.Contains(strings.ToLower(f.Name), strings.ToLower(search)) {
			continue
		}
		if category != "" && f.Category != category {
			continue
		}
		out = append(out, f)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *fakeMenu) Categories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, f := range m.sorted() {
		if f.Available && !seen[f.Category] {
			seen[f.Category] = true
			out = append(out, f.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *fakeMenu) All(_ context.Context) ([]models.FoodItem, error) { return m.sorted(), m.err }

func (m *fakeMenu) Create(_ context.Context, f *models.FoodItem) error {
	if m.err != nil {
		return m.err
	}
	m.next++
	f.ID = m.next
	cp := *f
	m.items[f.ID] = &cp
	return nil
}

func (m *fakeMenu) Update(_ context.Context, f *models.FoodItem) (bool, error) {
	if _, ok := m.items[f.ID]; !ok {
		return false, m.err
	}
	cp := *f
	m.items[f.ID] = &cp
	return true, m.err
}

func (m *fakeMenu) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, m.err
	}
	delete(m.items, id)
	return true, m.err
}

// fakeOrders implements OrderStore over a map.
type fakeOrders struct {
	rows      map[uint]*models.Order
	next      uint
	inserts   int
	insertErr error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{rows: map[uint]*models.Order{}}
}

func (o *fakeOrders) InsertOrder(_ context.Context, ord *models.Order) (uint, error) {
	o.inserts++
	if o.insertErr != nil {
		return 0, o.insertErr
	}
	o.next++
	cp := *ord
	cp.ID = o.next
	o.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (o *fakeOrders) FindView(_ context.Context, id uint) (*models.OrderView, error) {
	r, ok := o.rows[id]
	if !ok {
		return nil, nil
	}
	return &models.OrderView{Order: *r, FoodName: "Dish"}, nil
}

func (o *fakeOrders) ListViews(_ context.Context, username string) ([]models.OrderView, error) {
	var out []models.OrderView
	for _, r := range o.rows {
		if username == "" || r.Username == username {
			out = append(out, models.OrderView{Order: *r})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (o *fakeOrders) RecordPayment(_ context.Context, id uint, method string, at time.Time) (bool, error) {
	r, ok := o.rows[id]
	if !ok {
		return false, nil
	}
	r.PaymentMethod = &method
	r.PaymentDate = &at
	return true, nil
}

func (o *fakeOrders) UpdateStatus(_ context.Context, id uint, status string) (bool, error) {
	r, ok := o.rows[id]
	if !ok {
		return false, nil
	}
	r.Status = status
	return true, nil
}

func (o *fakeOrders) DeleteOrder(_ context.Context, id uint, owner string) (bool, error) {
	r, ok := o.rows[id]
	if !ok || (owner != "" && r.Username != owner) {
		return false, nil
	}
	delete(o.rows, id)
	return true, nil
}

// fakeUsers implements UserStore.
type fakeUsers struct {
	rows map[string]*models.User
	err  error
}

func (u *fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.rows[username], nil
}

func (u *fakeUsers) Create(_ context.Context, user *models.User) error {
	if u.err != nil {
		return u.err
	}
	if _, ok := u.rows[user.Username]; ok {
		return repositories.ErrDuplicate
	}
	cp := *user
	u.rows[user.Username] = &cp
	return nil
}

var errDown = errors.New("database is down")
