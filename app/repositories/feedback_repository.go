package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/pkg/metrics"
	"github.com/shashiranjanraj/foodhub/pkg/orm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	defer metrics.ObserveDBQuery("insert_feedback", time.Now())

	return orm.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Create(f).Error
	})
}

// Latest returns the newest entries first.
func (r *FeedbackRepository) Latest(ctx context.Context, limit int) ([]models.Feedback, error) {
	var out []models.Feedback
	return out, orm.New(ctx, r.db).Model(&models.Feedback{}).
		Order("created_at DESC").Order("feedback_id DESC").
		Limit(limit).Get(&out)
}
