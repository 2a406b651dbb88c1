package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/repositories"
)

type fakeFeedback struct {
	rows []models.Feedback
	err  error
}

func (f *fakeFeedback) Create(_ context.Context, fb *models.Feedback) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, *fb)
	return nil
}

func TestSubmitFeedback(t *testing.T) {
	store := &fakeFeedback{}
	svc := NewFeedbackService(store)

	_, err := svc.Submit(context.Background(), FeedbackInput{Name: "Ada", Email: "ada@example.com", Message: "Lovely"})
	require.NoError(t, err)
	require.Len(t, store.rows, 1)

	_, err = svc.Submit(context.Background(), FeedbackInput{Name: "Ada", Email: " ", Message: "x"})
	assert.ErrorIs(t, err, ErrIncompleteFeedback)

	_, err = svc.Submit(context.Background(), FeedbackInput{Name: "Ada", Email: "nope", Message: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	store.err = errDown
	_, err = svc.Submit(context.Background(), FeedbackInput{Name: "Ada", Email: "ada@example.com", Message: "x"})
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Len(t, store.rows, 1)
}

type fakeStats struct {
	stats *repositories.Stats
	err   error
}

func (f fakeStats) Stats(context.Context, int) (*repositories.Stats, error) { return f.stats, f.err }

func TestDashboardDegradesToZeros(t *testing.T) {
	st := NewDashboardService(fakeStats{err: errDown}).Stats(context.Background())
	assert.Zero(t, st.TotalOrders)
	assert.True(t, st.TotalRevenue.IsZero())
	assert.NotNil(t, st.Recent)

	st = NewDashboardService(fakeStats{stats: &repositories.Stats{TotalOrders: 4, TotalRevenue: dec("12.5")}}).Stats(context.Background())
	assert.EqualValues(t, 4, st.TotalOrders)
	assert.NotNil(t, st.Recent)
}
