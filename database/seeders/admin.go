package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/repositories"
	"github.com/shashiranjanraj/foodhub/config"
	"github.com/shashiranjanraj/foodhub/pkg/auth"
)

func init() {
	Register("admin", seedAdmin)
}

// seedAdmin creates the ADMIN_USERNAME account unless it already exists.
func seedAdmin(db *gorm.DB) error {
	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	username := config.Get("ADMIN_USERNAME", "admin")
	existing, err := users.FindByUsername(ctx, username)
	if err != nil || existing != nil {
		return err
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "admin123"))
	if err != nil {
		return err
	}
	return users.Create(ctx, &models.User{
		Username:  username,
		Password:  hash,
		Email:     config.Get("ADMIN_EMAIL", "admin@foodhub.local"),
		LoginType: models.LoginAdmin,
	})
}
