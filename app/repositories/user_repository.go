package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/pkg/metrics"
	"github.com/shashiranjanraj/foodhub/pkg/orm"
)

// ErrDuplicate is returned when a unique column already holds the value.
var ErrDuplicate = errors.New("repositories: duplicate record")

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns the user or (nil, nil).
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	defer metrics.ObserveDBQuery("find_user", time.Now())

	var u models.User
	found, err := orm.New(ctx, r.db).Where("username = ?", username).First(&u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

// Create persists u. A taken username yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	defer metrics.ObserveDBQuery("insert_user", time.Now())

	err := orm.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("username = ?", u.Username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicate
		}
		return tx.Create(u).Error
	})
	if errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// Count returns the number of users, used by the seeder.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return orm.New(ctx, r.db).Model(&models.User{}).Count()
}
