package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &createTable{model: &models.User{}})
	migration.Register("20260101000001_create_food_table", &createTable{model: &models.FoodItem{}})
	migration.Register("20260101000002_create_orders_table", &createTable{model: &models.Order{}})
	migration.Register("20260101000003_create_feedback_table", &createTable{model: &models.Feedback{}})
}

// createTable migrates a model's table on Up and drops it on Down.
type createTable struct {
	model interface{}
}

func (m *createTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(m.model)
}

func (m *createTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(m.model)
}
