package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/pkg/logger"
	"github.com/shashiranjanraj/foodhub/pkg/validate"
)

type FeedbackStore interface {
	Create(ctx context.Context, f *models.Feedback) error
}

// FeedbackInput is the contact form.
type FeedbackInput struct {
	Name    string `form:"name"    json:"name"`
	Email   string `form:"email"   json:"email"`
	Message string `form:"message" json:"message"`
}

type FeedbackService struct {
	store FeedbackStore
}

func NewFeedbackService(store FeedbackStore) *FeedbackService {
	return &FeedbackService{store: store}
}

// Submit stores the feedback. Every field is required and the email must be
// well formed.
func (s *FeedbackService) Submit(ctx context.Context, in FeedbackInput) (*models.Feedback, error) {
	f := &models.Feedback{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}
	if f.Name == "" || f.Email == "" || f.Message == "" {
		return nil, ErrIncompleteFeedback
	}
	if !validate.Var(f.Email, "email") {
		return nil, invalid("email", "The email must be a valid email address.")
	}

	if err := s.store.Create(ctx, f); err != nil {
		logger.WithCtx(ctx).Error("feedback insert failed", "error", err)
		return nil, fmt.Errorf("feedback: %w: %w", ErrPersistence, err)
	}
	return f, nil
}
