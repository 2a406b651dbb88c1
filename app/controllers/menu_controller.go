package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/foodhub/app/services"
	"github.com/shashiranjanraj/foodhub/pkg/ctx"
)

type MenuController struct {
	menu    *services.MenuService
	coupons *services.CouponService
}

func NewMenuController(menu *services.MenuService, coupons *services.CouponService) *MenuController {
	return &MenuController{menu: menu, coupons: coupons}
}

// Home handles GET /.
func (h *MenuController) Home(c *ctx.Context) {
	foods, err := h.menu.Featured(c.Context(), coupons(c).Coupon())
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Success(map[string]any{"foods": foods})
}

// Menu handles GET /menu?search=&category=.
func (h *MenuController) Menu(c *ctx.Context) {
	coupon := coupons(c).Coupon()
	menu, err := h.menu.Browse(c.Context(), c.Query("search"), c.Query("category"), coupon)
	if err != nil {
		c.Logger().Error("menu load failed", "error", err)
		c.Error(http.StatusInternalServerError, "Menu load failed.")
		return
	}
	c.Success(map[string]any{
		"foods":      menu.Foods,
		"categories": menu.Categories,
		"search":     menu.Search,
		"category":   menu.Category,
		"coupon":     coupon,
	})
}

type couponForm struct {
	Code string `form:"coupon_code" json:"coupon_code"`
}

// ApplyCoupon handles POST /apply_coupon.
func (h *MenuController) ApplyCoupon(c *ctx.Context) {
	var in couponForm
	if !c.Bind(&in) {
		return
	}
	res := h.coupons.Apply(coupons(c), in.Code)
	c.Message(res.Message, res)
}

// Coupon handles GET /coupon.
func (h *MenuController) Coupon(c *ctx.Context) {
	c.Success(map[string]any{"coupon": h.coupons.Current(coupons(c))})
}

// RemoveCoupon handles POST /remove_coupon.
func (h *MenuController) RemoveCoupon(c *ctx.Context) {
	res := h.coupons.Remove(coupons(c))
	c.Message(res.Message, res)
}
