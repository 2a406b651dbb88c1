package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/pkg/cache"
	"github.com/shashiranjanraj/foodhub/pkg/metrics"
	"github.com/shashiranjanraj/foodhub/pkg/orm"
)

// CategoriesCacheKey holds the distinct categories of available items.
const CategoriesCacheKey = "menu:categories"

const categoriesTTL = 5 * time.Minute

// FoodRepository reads and writes the food table.
type FoodRepository struct {
	db *gorm.DB
}

func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

// FindFood returns the item or (nil, nil) when no row has id.
func (r *FoodRepository) FindFood(ctx context.Context, id uint) (*models.FoodItem, error) {
	defer metrics.ObserveDBQuery("find_food", time.Now())

	var f models.FoodItem
	found, err := orm.New(ctx, r.db).Where("food_id = ?", id).First(&f)
	if err != nil || !found {
		return nil, err
	}
	return &f, nil
}

// Available lists available items matching search (substring of the name)
// and category (exact); empty filters match everything. limit <= 0 means
// no limit.
func (r *FoodRepository) Available(ctx context.Context, search, category string, limit int) ([]models.FoodItem, error) {
	defer metrics.ObserveDBQuery("list_food", time.Now())

	q := orm.New(ctx, r.db).Model(&models.FoodItem{}).Where("available = ?", true)
	if search != "" {
		q = q.Where("food_name LIKE ?", "%"+search+"%")
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	q = q.Order("food_id")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var foods []models.FoodItem
	return foods, q.Get(&foods)
}

// Categories returns the distinct categories of available items, cached for
// a few minutes and flushed by every write.
func (r *FoodRepository) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	err := cache.Remember(ctx, CategoriesCacheKey, categoriesTTL, &cats, func() error {
		defer metrics.ObserveDBQuery("list_categories", time.Now())
		return orm.New(ctx, r.db).Model(&models.FoodItem{}).
			Where("available = ?", true).
			Distinct().
			Order("category").
			Pluck("category", &cats)
	})
	return cats, err
}

// All returns every item, available or not, ordered by id.
func (r *FoodRepository) All(ctx context.Context) ([]models.FoodItem, error) {
	defer metrics.ObserveDBQuery("list_food", time.Now())

	var foods []models.FoodItem
	return foods, orm.New(ctx, r.db).Model(&models.FoodItem{}).Order("food_id").Get(&foods)
}

// Create inserts f and sets its ID.
func (r *FoodRepository) Create(ctx context.Context, f *models.FoodItem) error {
	defer metrics.ObserveDBQuery("insert_food", time.Now())

	err := orm.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Create(f).Error
	})
	if err == nil {
		r.flush(ctx)
	}
	return err
}

// Update overwrites every column of f. It reports false when no row has
// f.ID.
func (r *FoodRepository) Update(ctx context.Context, f *models.FoodItem) (bool, error) {
	defer metrics.ObserveDBQuery("update_food", time.Now())

	var found bool
	err := orm.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.FoodItem{}).Where("food_id = ?", f.ID).Count(&n).Error; err != nil || n == 0 {
			return err
		}
		found = true
		// Explicit columns so false and NULL values are written too.
		return tx.Model(&models.FoodItem{}).Where("food_id = ?", f.ID).
			Select("food_name", "category", "price", "discount_percent", "available", "image_url").
			Updates(f).Error
	})
	if err == nil && found {
		r.flush(ctx)
	}
	return found, err
}

// Delete removes the item. It reports false when no row has id.
func (r *FoodRepository) Delete(ctx context.Context, id uint) (bool, error) {
	defer metrics.ObserveDBQuery("delete_food", time.Now())

	var n int64
	err := orm.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		res := tx.Where("food_id = ?", id).Delete(&models.FoodItem{})
		n = res.RowsAffected
		return res.Error
	})
	if err == nil && n > 0 {
		r.flush(ctx)
	}
	return n > 0, err
}

func (r *FoodRepository) flush(ctx context.Context) {
	_ = cache.Del(ctx, CategoriesCacheKey)
}
