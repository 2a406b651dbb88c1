package controllers

import (
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/foodhub/app/services"
	"github.com/shashiranjanraj/foodhub/pkg/ctx"
)

const orderNotFound = "Order not found."

type OrderController struct {
	orders *services.OrderService
	menu   *services.MenuService
}

func NewOrderController(orders *services.OrderService, menu *services.MenuService) *OrderController {
	return &OrderController{orders: orders, menu: menu}
}

// Form handles GET /order/{food_id}: the item at the caller's price.
func (h *OrderController) Form(c *ctx.Context) {
	id, ok := pathID(c, "food_id")
	if !ok {
		return
	}
	coupon := coupons(c).Coupon()
	food, err := h.menu.Find(c.Context(), id, coupon)
	if err != nil {
		fail(c, err, "Food not found.")
		return
	}
	c.Success(map[string]any{"food": food, "coupon": coupon})
}

// Place handles POST /order/{food_id}.
func (h *OrderController) Place(c *ctx.Context) {
	id, ok := pathID(c, "food_id")
	if !ok {
		return
	}
	var form services.OrderForm
	if !c.Bind(&form) {
		return
	}

	placed, err := h.orders.Place(c.Context(), caller(c).Username, id, form, coupons(c).Coupon())
	if err != nil {
		fail(c, err, "Food not found.")
		return
	}
	c.Created(fmt.Sprintf("/order_success/%d", placed.ID), placed)
}

// Show serves /order_success/{order_id}, the receipt and the pay page: all
// three show the same joined order.
func (h *OrderController) Show(c *ctx.Context) {
	id, ok := pathID(c, "order_id")
	if !ok {
		return
	}
	view, err := h.orders.Get(c.Context(), id, owner(c))
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	c.Success(view)
}

type payForm struct {
	Method string `form:"payment_method" json:"payment_method"`
}

// Pay handles POST /order/{order_id}/pay.
func (h *OrderController) Pay(c *ctx.Context) {
	id, ok := pathID(c, "order_id")
	if !ok {
		return
	}
	var in payForm
	if !c.Bind(&in) {
		return
	}

	view, err := h.orders.Pay(c.Context(), id, owner(c), in.Method)
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	c.SetHeader("Location", fmt.Sprintf("/payment_success/%d", id))
	c.Message(fmt.Sprintf("Paid with %s!", *view.PaymentMethod), view)
}

// List handles GET /order-list.
func (h *OrderController) List(c *ctx.Context) {
	orders, err := h.orders.List(c.Context(), owner(c))
	if err != nil {
		c.Logger().Error("order list failed", "error", err)
		c.Error(http.StatusInternalServerError, "Failed to load orders.")
		return
	}
	c.Success(map[string]any{"orders": orders})
}

// Delete handles POST /delete_order/{order_id}.
func (h *OrderController) Delete(c *ctx.Context) {
	id, ok := pathID(c, "order_id")
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Context(), id, owner(c), caller(c).Username); err != nil {
		fail(c, err, orderNotFound)
		return
	}
	c.Message("Order deleted.", nil)
}
