package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/foodhub/app/services"
	"github.com/shashiranjanraj/foodhub/pkg/ctx"
)

// maxImageBytes caps menu image uploads.
const maxImageBytes = 5 << 20

type AdminController struct {
	dashboard *services.DashboardService
	menu      *services.MenuService
	orders    *services.OrderService
}

func NewAdminController(dashboard *services.DashboardService, menu *services.MenuService, orders *services.OrderService) *AdminController {
	return &AdminController{dashboard: dashboard, menu: menu, orders: orders}
}

// Dashboard handles GET /dashboard.
func (h *AdminController) Dashboard(c *ctx.Context) {
	c.Success(h.dashboard.Stats(c.Context()))
}

// Menu handles GET /manage-menu.
func (h *AdminController) Menu(c *ctx.Context) {
	foods, err := h.menu.All(c.Context())
	if err != nil {
		c.Logger().Error("load menu failed", "error", err)
		c.Error(http.StatusInternalServerError, "Failed to load menu.")
		return
	}
	c.Success(map[string]any{"foods": foods})
}

// menuForm is the manage-menu form; action is add, edit or delete.
type menuForm struct {
	Action          string            `form:"action"           json:"action"`
	FoodID          services.FormText `form:"food_id"          json:"food_id"`
	Name            string            `form:"food_name"        json:"food_name"`
	Category        string            `form:"category"         json:"category"`
	Price           services.FormText `form:"price"            json:"price"`
	DiscountPercent services.FormText `form:"discount_percent" json:"discount_percent"`
	ImageURL        string            `form:"image_url"        json:"image_url"`
	Available       bool              `form:"available"        json:"available"`
}

func (f menuForm) input() services.MenuInput {
	return services.MenuInput{
		Name:            f.Name,
		Category:        f.Category,
		Price:           f.Price,
		DiscountPercent: f.DiscountPercent,
		ImageURL:        f.ImageURL,
		Available:       f.Available,
	}
}

// SaveMenu handles POST /manage-menu.
func (h *AdminController) SaveMenu(c *ctx.Context) {
	var in menuForm
	if !c.Bind(&in) {
		return
	}

	action := strings.ToLower(strings.TrimSpace(in.Action))
	if action == "add" {
		f, err := h.menu.Add(c.Context(), in.input())
		if err != nil {
			fail(c, err, "")
			return
		}
		c.Respond(http.StatusCreated, "Item added!", f)
		return
	}

	id, ok := formID(in.FoodID)
	if !ok {
		c.ValidationError(map[string]string{"food_id": "The food_id field is required."})
		return
	}

	switch action {
	case "edit":
		f, err := h.menu.Update(c.Context(), id, in.input())
		if err != nil {
			fail(c, err, "Food not found.")
			return
		}
		c.Message("Item updated!", f)
	case "delete":
		if err := h.menu.Delete(c.Context(), id); err != nil {
			fail(c, err, "Food not found.")
			return
		}
		c.Message("Item deleted!", nil)
	default:
		c.Error(http.StatusBadRequest, "Unknown action.")
	}
}

// UploadImage handles POST /manage-menu/image (multipart field "image").
func (h *AdminController) UploadImage(c *ctx.Context) {
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxImageBytes)
	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.ValidationError(map[string]string{"image": "The image field is required."})
		return
	}
	defer file.Close()

	url, err := h.menu.UploadImage(c.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Created(url, map[string]string{"image_url": url})
}

// Orders handles GET /manage-orders.
func (h *AdminController) Orders(c *ctx.Context) {
	orders, err := h.orders.List(c.Context(), "")
	if err != nil {
		c.Logger().Error("load orders failed", "error", err)
		c.Error(http.StatusInternalServerError, "Failed to load orders.")
		return
	}
	c.Success(map[string]any{"orders": orders})
}

type manageOrderForm struct {
	Action  string            `form:"action"   json:"action"`
	OrderID services.FormText `form:"order_id" json:"order_id"`
	Status  string            `form:"status"   json:"status"`
}

// SaveOrder handles POST /manage-orders: action=delete, or a status change.
func (h *AdminController) SaveOrder(c *ctx.Context) {
	var in manageOrderForm
	if !c.Bind(&in) {
		return
	}
	id, ok := formID(in.OrderID)
	if !ok {
		c.ValidationError(map[string]string{"order_id": "The order_id field is required."})
		return
	}
	actor := caller(c).Username

	if strings.EqualFold(in.Action, "delete") {
		if err := h.orders.Delete(c.Context(), id, "", actor); err != nil {
			fail(c, err, orderNotFound)
			return
		}
		c.Message("Order deleted.", nil)
		return
	}

	if err := h.orders.UpdateStatus(c.Context(), id, in.Status, actor); err != nil {
		fail(c, err, orderNotFound)
		return
	}
	c.Message(fmt.Sprintf("Status updated to %s.", strings.TrimSpace(in.Status)), nil)
}

func formID(t services.FormText) (uint, bool) {
	n, err := strconv.ParseUint(t.String(), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
