package controller

import (
	"farm-market-session/metrics"
	"farm-market-session/middleware"
	"farm-market-session/service"
	"farm-market-session/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	swag "github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes mounts every endpoint the frontend talks to
func SetupRoutes(app *fiber.App, svc *service.SessionService, collector *metrics.Collector, gatherer prometheus.Gatherer, cfg util.Config) {
	// Apply timer metrics middleware globally to all routes
	app.Use(middleware.TimerMetrics(collector))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", swag.HandlerDefault)

	sessionController := NewSessionController(svc)

	api := app.Group("/api/v1")

	session := api.Group("/session")
	session.Post("/", middleware.EstablishRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow), sessionController.Establish)
	session.Get("/", middleware.RequireSession(svc), sessionController.Current)
	session.Delete("/", sessionController.Clear)

	api.Post("/token/decode", sessionController.Decode)
}
