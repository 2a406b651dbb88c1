package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/foodhub/app/graph"
	"github.com/shashiranjanraj/foodhub/pkg/ctx"
)

type GraphController struct {
	handler http.Handler
}

func NewGraphController(handler http.Handler) *GraphController {
	return &GraphController{handler: handler}
}

// Query handles POST /graphql with the caller's coupon in scope.
func (h *GraphController) Query(c *ctx.Context) {
	r := c.R.WithContext(graph.WithCoupon(c.Context(), coupons(c).Coupon()))
	h.handler.ServeHTTP(c.W, r)
}
