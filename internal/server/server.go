// Package server boots the application: configuration, storage,
// listeners and the HTTP stack.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/sokoni/app/controllers"
	"github.com/shashiranjanraj/sokoni/app/listeners"
	"github.com/shashiranjanraj/sokoni/app/repositories"
	"github.com/shashiranjanraj/sokoni/app/routes"
	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/config"
	"github.com/shashiranjanraj/sokoni/pkg/audit"
	"github.com/shashiranjanraj/sokoni/pkg/cache"
	"github.com/shashiranjanraj/sokoni/pkg/database"
	"github.com/shashiranjanraj/sokoni/pkg/logger"
	"github.com/shashiranjanraj/sokoni/pkg/metrics"
	"github.com/shashiranjanraj/sokoni/pkg/middleware"
	"github.com/shashiranjanraj/sokoni/pkg/notification"
	"github.com/shashiranjanraj/sokoni/pkg/reqid"
	"github.com/shashiranjanraj/sokoni/pkg/router"
	"github.com/shashiranjanraj/sokoni/pkg/workerpool"
	"github.com/shashiranjanraj/sokoni/pkg/ws"
)

// Start wires every dependency and serves HTTP until the process exits.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, reads fall through to the database", "error", err)
	}

	trail, err := audit.Open(config.AuditMongoURI())
	if err != nil {
		logger.Warn("audit trail unavailable", "error", err)
	}

	db := database.DB
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	hub := ws.NewHub()
	go hub.Run()

	notification.SetStore(notificationRepo)
	notification.SetPusher(&listeners.HubPusher{Hub: hub})

	pool := workerpool.New(8)
	listeners.New(userRepo, pool).Register()

	authService := services.NewAuthService(userRepo)
	productService := services.NewProductService(userRepo, productRepo)
	checkoutService := services.NewCheckoutService(userRepo, productRepo, cartRepo, orderRepo)
	orderService := services.NewOrderService(userRepo, orderRepo)
	moderationService := services.NewModerationService(userRepo, productRepo, orderRepo, reportRepo, trail)
	reportService := services.NewReportService(userRepo, reportRepo)
	reviewService := services.NewReviewService(userRepo, productRepo, reviewRepo)
	adminService := services.NewAdminService(userRepo, orderRepo, reportRepo)

	r := router.New()
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
		metrics.Middleware(),
	)
	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r, routes.Controllers{
		Auth:          controllers.NewAuthController(authService),
		Products:      controllers.NewProductController(productService),
		Cart:          controllers.NewCartController(checkoutService),
		Orders:        controllers.NewOrderController(checkoutService, orderService),
		Delivery:      controllers.NewDeliveryController(orderService),
		Admin:         controllers.NewAdminController(adminService, moderationService, orderService, reportService),
		Reports:       controllers.NewReportController(reportService),
		Reviews:       controllers.NewReviewController(reviewService),
		Notifications: controllers.NewNotificationController(notificationRepo, hub),
	})

	addr := fmt.Sprintf(":%s", config.AppPort())
	logger.Info("sokoni listening", "addr", addr, "env", config.AppEnv())

	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
