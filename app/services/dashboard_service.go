package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/repositories"
	"github.com/shashiranjanraj/foodhub/pkg/logger"
)

// RecentOrders is how many orders the dashboard lists.
const RecentOrders = 5

type StatsStore interface {
	Stats(ctx context.Context, recent int) (*repositories.Stats, error)
}

type DashboardService struct {
	store StatsStore
}

func NewDashboardService(store StatsStore) *DashboardService {
	return &DashboardService{store: store}
}

// Stats never fails: a store error is logged and reported as zeros.
func (s *DashboardService) Stats(ctx context.Context) *repositories.Stats {
	st, err := s.store.Stats(ctx, RecentOrders)
	if err != nil {
		logger.WithCtx(ctx).Error("dashboard stats failed", "error", err)
		return &repositories.Stats{TotalRevenue: decimal.Zero, Recent: []models.Order{}}
	}
	if st.Recent == nil {
		st.Recent = []models.Order{}
	}
	return st
}
