package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/foodhub/app/services"
	"github.com/shashiranjanraj/foodhub/pkg/ctx"
)

type FeedbackController struct {
	service *services.FeedbackService
}

func NewFeedbackController(service *services.FeedbackService) *FeedbackController {
	return &FeedbackController{service: service}
}

// Submit handles POST /submit_feedback.
func (h *FeedbackController) Submit(c *ctx.Context) {
	var in services.FeedbackInput
	if !c.Bind(&in) {
		return
	}

	_, err := h.service.Submit(c.Context(), in)
	switch {
	case err == nil:
		c.Message("Thank you for your feedback!", nil)
	case errors.Is(err, services.ErrIncompleteFeedback):
		c.Error(http.StatusBadRequest, "All fields required")
	default:
		fail(c, err, "")
	}
}
