package routes

import (
	"github.com/shashiranjanraj/sokoni/app/controllers"
	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/pkg/middleware"
	"github.com/shashiranjanraj/sokoni/pkg/router"
)

// Controllers bundles the constructed controllers the API needs.
type Controllers struct {
	Auth          *controllers.AuthController
	Products      *controllers.ProductController
	Cart          *controllers.CartController
	Orders        *controllers.OrderController
	Delivery      *controllers.DeliveryController
	Admin         *controllers.AdminController
	Reports       *controllers.ReportController
	Reviews       *controllers.ReviewController
	Notifications *controllers.NotificationController
}

// RegisterAPI mounts every route. Role groups: buyers shop, sellers
// list, couriers drive orders, admins moderate.
func RegisterAPI(r *router.Router, c Controllers) {
	api := r.Group("/api")

	api.Post("/register", "auth.register", c.Auth.Register)
	api.Post("/login", "auth.login", c.Auth.Login)

	api.Get("/products", "products.index", c.Products.Index)
	api.Get("/products/{id}", "products.show", c.Products.Show)
	api.Get("/products/{id}/reviews", "products.reviews", c.Reviews.Index)

	authed := api.Group("", middleware.Auth)

	authed.Get("/notifications", "notifications.index", c.Notifications.Index)
	authed.Get("/notifications/unread", "notifications.unread", c.Notifications.UnreadCount)
	authed.Post("/notifications/{id}/read", "notifications.read", c.Notifications.MarkRead)
	authed.Post("/notifications/read-all", "notifications.read_all", c.Notifications.MarkAllRead)
	authed.Get("/ws", "notifications.socket", c.Notifications.Socket)

	authed.Post("/reports", "reports.store", c.Reports.Store)

	authed.Post("/products/{id}/reviews", "products.reviews.store", c.Reviews.Store)
	authed.Delete("/reviews/{id}", "reviews.destroy", c.Reviews.Destroy)

	buyer := authed.Group("")
	buyer.Get("/cart", "cart.index", c.Cart.Index)
	buyer.Post("/cart", "cart.store", c.Cart.Store)
	buyer.Delete("/cart/{product_id}", "cart.destroy", c.Cart.Destroy)
	buyer.Post("/orders", "orders.store", c.Orders.Store)
	buyer.Get("/orders", "orders.index", c.Orders.Index)
	buyer.Get("/orders/{id}", "orders.show", c.Orders.Show)

	seller := authed.Group("/seller", middleware.RequireRole(models.RoleSeller, models.RoleAdmin))
	seller.Get("/products", "seller.products", c.Products.Mine)
	seller.Post("/products", "seller.products.store", c.Products.Store)
	seller.Put("/products/{id}", "seller.products.update", c.Products.Update)

	delivery := authed.Group("/delivery", middleware.RequireRole(models.RoleDelivery, models.RoleAdmin))
	delivery.Get("/orders", "delivery.queue", c.Delivery.Queue)
	delivery.Post("/orders/{id}/status", "delivery.transition", c.Delivery.Transition)
	delivery.Post("/orders/{id}/payment", "delivery.payment", c.Delivery.ConfirmPayment)
	delivery.Get("/orders/{id}/location", "delivery.location", c.Delivery.Location)

	admin := authed.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.Get("/dashboard", "admin.dashboard", c.Admin.Dashboard)
	admin.Get("/users", "admin.users", c.Admin.Users)
	admin.Get("/users/flagged", "admin.users.flagged", c.Admin.Flagged)
	admin.Get("/users/{id}/reports", "admin.users.reports", c.Admin.ReportsAgainst)
	admin.Post("/users/{id}/suspend", "admin.users.suspend", c.Admin.Suspend)
	admin.Post("/users/{id}/unsuspend", "admin.users.unsuspend", c.Admin.Unsuspend)
	admin.Post("/users/{id}/ban", "admin.users.ban", c.Admin.Ban)
	admin.Get("/orders", "admin.orders", c.Admin.Orders)
	admin.Post("/orders/{id}/assign", "admin.orders.assign", c.Admin.AssignDelivery)
	admin.Get("/reports", "admin.reports", c.Admin.Reports)
	admin.Post("/reports/{id}/resolve", "admin.reports.resolve", c.Admin.ResolveReport)
}
