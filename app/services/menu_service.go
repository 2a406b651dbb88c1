package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/pricing"
	"github.com/shashiranjanraj/foodhub/pkg/logger"
	"github.com/shashiranjanraj/foodhub/pkg/storage"
	"github.com/shashiranjanraj/foodhub/pkg/validate"
)

// FeaturedCount is how many items the home page shows.
const FeaturedCount = 3

// MenuStore is the food table as the catalog sees it.
type MenuStore interface {
	CatalogStore
	Available(ctx context.Context, search, category string, limit int) ([]models.FoodItem, error)
	Categories(ctx context.Context) ([]string, error)
	All(ctx context.Context) ([]models.FoodItem, error)
	Create(ctx context.Context, f *models.FoodItem) error
	Update(ctx context.Context, f *models.FoodItem) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// MenuInput is the admin add/edit form.
type MenuInput struct {
	Name            string   `form:"food_name"        json:"food_name"        validate:"required,max=255"`
	Category        string   `form:"category"         json:"category"         validate:"required,max=100"`
	Price           FormText `form:"price"            json:"price"`
	DiscountPercent FormText `form:"discount_percent" json:"discount_percent"`
	ImageURL        string   `form:"image_url"        json:"image_url"        validate:"max=512"`
	Available       bool     `form:"available"        json:"available"`
}

// Menu is the browse page: priced items plus the category filter values.
type Menu struct {
	Foods      []PricedFood `json:"foods"`
	Categories []string     `json:"categories"`
	Search     string       `json:"search"`
	Category   string       `json:"category"`
}

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// MenuService serves the menu and its admin screens.
type MenuService struct {
	store MenuStore
	disk  storage.Disk
}

// NewMenuService wires the store. disk may be nil when uploads are not
// configured.
func NewMenuService(store MenuStore, disk storage.Disk) *MenuService {
	return &MenuService{store: store, disk: disk}
}

// Featured returns the first few available items priced with coupon.
func (s *MenuService) Featured(ctx context.Context, coupon *pricing.Coupon) ([]PricedFood, error) {
	foods, err := s.store.Available(ctx, "", "", FeaturedCount)
	if err != nil {
		return nil, fmt.Errorf("menu: featured: %w", err)
	}
	return priced(foods, coupon), nil
}

// Browse filters available items by name substring and exact category.
func (s *MenuService) Browse(ctx context.Context, search, category string, coupon *pricing.Coupon) (*Menu, error) {
	search = strings.TrimSpace(search)
	category = strings.TrimSpace(category)

	foods, err := s.store.Available(ctx, search, category, 0)
	if err != nil {
		return nil, fmt.Errorf("menu: browse: %w", err)
	}
	cats, err := s.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu: categories: %w", err)
	}
	return &Menu{Foods: priced(foods, coupon), Categories: cats, Search: search, Category: category}, nil
}

// Find returns one item priced with coupon, available or not.
func (s *MenuService) Find(ctx context.Context, id uint, coupon *pricing.Coupon) (*PricedFood, error) {
	f, err := s.store.FindFood(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("menu: find %d: %w", id, err)
	}
	if f == nil {
		return nil, fmt.Errorf("food %d: %w", id, ErrNotFound)
	}
	return &PricedFood{FoodItem: *f, DiscountedPrice: pricing.Price(*f, coupon)}, nil
}

// All lists every item for the admin screen.
func (s *MenuService) All(ctx context.Context) ([]models.FoodItem, error) {
	foods, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu: all: %w", err)
	}
	return foods, nil
}

// Add validates in and creates the item.
func (s *MenuService) Add(ctx context.Context, in MenuInput) (*models.FoodItem, error) {
	f, err := in.item()
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, f); err != nil {
		logger.WithCtx(ctx).Error("menu insert failed", "error", err)
		return nil, fmt.Errorf("menu: add: %w: %w", ErrPersistence, err)
	}
	return f, nil
}

// Update replaces every field of item id.
func (s *MenuService) Update(ctx context.Context, id uint, in MenuInput) (*models.FoodItem, error) {
	f, err := in.item()
	if err != nil {
		return nil, err
	}
	f.ID = id

	ok, err := s.store.Update(ctx, f)
	if err != nil {
		logger.WithCtx(ctx).Error("menu update failed", "food_id", id, "error", err)
		return nil, fmt.Errorf("menu: update %d: %w: %w", id, ErrPersistence, err)
	}
	if !ok {
		return nil, fmt.Errorf("food %d: %w", id, ErrNotFound)
	}
	return f, nil
}

// Delete removes item id.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Error("menu delete failed", "food_id", id, "error", err)
		return fmt.Errorf("menu: delete %d: %w: %w", id, ErrPersistence, err)
	}
	if !ok {
		return fmt.Errorf("food %d: %w", id, ErrNotFound)
	}
	return nil
}

// UploadImage stores an image under menu/ with a random name and returns
// its public URL.
func (s *MenuService) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if s.disk == nil {
		return "", fmt.Errorf("menu: upload: %w", ErrPersistence)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return "", invalid("image", "The image must be a file of type: jpg, jpeg, png, gif, webp.")
	}

	path := "menu/" + uuid.NewString() + ext
	if err := s.disk.Put(ctx, path, r, contentType); err != nil {
		logger.WithCtx(ctx).Error("menu image upload failed", "disk", s.disk.Name(), "error", err)
		return "", fmt.Errorf("menu: upload: %w: %w", ErrPersistence, err)
	}
	return s.disk.URL(path), nil
}

func (in MenuInput) item() (*models.FoodItem, error) {
	errs := validate.Struct(in)

	price, err := decimal.NewFromString(in.Price.String())
	switch {
	case err != nil:
		errs["price"] = "The price must be a number."
	case price.IsNegative():
		errs["price"] = "The price must be at least 0."
	}

	discount := decimal.NullDecimal{}
	if raw := in.DiscountPercent.String(); raw != "" {
		d, err := decimal.NewFromString(raw)
		switch {
		case err != nil:
			errs["discount_percent"] = "The discount_percent must be a number."
		case d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)):
			errs["discount_percent"] = "The discount_percent must be between 0 and 100."
		default:
			discount = decimal.NewNullDecimal(d)
		}
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	f := &models.FoodItem{
		Name:            strings.TrimSpace(in.Name),
		Category:        strings.TrimSpace(in.Category),
		Price:           pricing.Round2(price),
		DiscountPercent: discount,
		Available:       in.Available,
	}
	if url := strings.TrimSpace(in.ImageURL); url != "" {
		f.ImageURL = &url
	}
	return f, nil
}
