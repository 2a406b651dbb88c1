package routes

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodhub/app/controllers"
	"github.com/shashiranjanraj/foodhub/app/graph"
	"github.com/shashiranjanraj/foodhub/app/repositories"
	"github.com/shashiranjanraj/foodhub/app/services"
	"github.com/shashiranjanraj/foodhub/pkg/ctx"
	"github.com/shashiranjanraj/foodhub/pkg/event"
	"github.com/shashiranjanraj/foodhub/pkg/graphql"
	"github.com/shashiranjanraj/foodhub/pkg/metrics"
	"github.com/shashiranjanraj/foodhub/pkg/middleware"
	"github.com/shashiranjanraj/foodhub/pkg/rbac"
	"github.com/shashiranjanraj/foodhub/pkg/router"
	"github.com/shashiranjanraj/foodhub/pkg/storage"
)

// StoragePrefix is where files on the local disk are served.
const StoragePrefix = "/storage"

// Deps are the process-wide resources the routes are built from. Events and
// Disk may be nil.
type Deps struct {
	DB     *gorm.DB
	Events *event.Bus
	Disk   storage.Disk
}

// RegisterWeb wires repositories, services and controllers over d and
// mounts every route on r.
func RegisterWeb(r *router.Router, d Deps) error {
	foods := repositories.NewFoodRepository(d.DB)
	orderRepo := repositories.NewOrderRepository(d.DB)

	menu := services.NewMenuService(foods, d.Disk)
	orders := services.NewOrderService(foods, orderRepo, d.Events)

	schema, err := graph.NewSchema(menu, orders)
	if err != nil {
		return fmt.Errorf("routes: graphql schema: %w", err)
	}

	authC := controllers.NewAuthController(services.NewAuthService(repositories.NewUserRepository(d.DB)))
	menuC := controllers.NewMenuController(menu, services.NewCouponService())
	orderC := controllers.NewOrderController(orders, menu)
	feedbackC := controllers.NewFeedbackController(services.NewFeedbackService(repositories.NewFeedbackRepository(d.DB)))
	adminC := controllers.NewAdminController(services.NewDashboardService(orderRepo), menu, orders)
	graphC := controllers.NewGraphController(graphql.Handler(schema))

	r.Get("/metrics", "metrics", metrics.Handler())

	if local, ok := d.Disk.(*storage.LocalDisk); ok {
		r.Get(StoragePrefix+"/*", "storage", http.StripPrefix(StoragePrefix, local.Handler()).ServeHTTP)
	}

	// Guests
	r.Get("/", "home", ctx.Wrap(menuC.Home))
	r.Post("/auth", "auth", ctx.Wrap(authC.Auth))
	r.Post("/auth-admin", "auth.admin", ctx.Wrap(authC.AdminAuth))
	r.Get("/logout", "logout", ctx.Wrap(authC.Logout))

	// Signed-in users
	user := r.Group("", middleware.RequireLogin)
	user.Get("/menu", "menu", ctx.Wrap(menuC.Menu))
	user.Post("/apply_coupon", "coupon.apply", ctx.Wrap(menuC.ApplyCoupon))
	user.Get("/coupon", "coupon.show", ctx.Wrap(menuC.Coupon))
	user.Post("/remove_coupon", "coupon.remove", ctx.Wrap(menuC.RemoveCoupon))

	user.Get("/order/{food_id}", "orders.form", ctx.Wrap(orderC.Form))
	user.Post("/order/{food_id}", "orders.place", ctx.Wrap(orderC.Place))
	user.Get("/order_success/{order_id}", "orders.success", ctx.Wrap(orderC.Show))
	user.Get("/order/{order_id}/receipt", "orders.receipt", ctx.Wrap(orderC.Show))
	user.Get("/order/{order_id}/pay", "orders.pay.form", ctx.Wrap(orderC.Show))
	user.Post("/order/{order_id}/pay", "orders.pay", ctx.Wrap(orderC.Pay))
	user.Get("/payment_success/{order_id}", "orders.paid", ctx.Wrap(orderC.Show))
	user.Get("/order-list", "orders.index", ctx.Wrap(orderC.List))
	user.Post("/delete_order/{order_id}", "orders.delete", ctx.Wrap(orderC.Delete))

	user.Post("/submit_feedback", "feedback.submit", ctx.Wrap(feedbackC.Submit))
	user.Post("/graphql", "graphql", ctx.Wrap(graphC.Query))

	// Admins
	admin := r.Group("", rbac.Admin)
	admin.Get("/dashboard", "admin.dashboard", ctx.Wrap(adminC.Dashboard))
	admin.Get("/manage-menu", "admin.menu", ctx.Wrap(adminC.Menu))
	admin.Post("/manage-menu", "admin.menu.save", ctx.Wrap(adminC.SaveMenu))
	admin.Post("/manage-menu/image", "admin.menu.image", ctx.Wrap(adminC.UploadImage))
	admin.Get("/manage-orders", "admin.orders", ctx.Wrap(adminC.Orders))
	admin.Post("/manage-orders", "admin.orders.save", ctx.Wrap(adminC.SaveOrder))

	return nil
}
