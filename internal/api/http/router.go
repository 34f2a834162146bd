package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hallticket-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Applications *handlers.ApplicationsHandler
	Webhook      *handlers.WebhookHandler
	Verify       *handlers.VerifyHandler
	DocumentsDir string
	DocumentsURL string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/send-otp", cfg.Applications.SendCode)
	app.Post("/verify-otp", cfg.Applications.Register)
	app.Get("/status/:ticketID", cfg.Applications.Status)

	app.Post("/webhooks/payment", cfg.Webhook.HandlePaymentEvent)

	app.Get("/verify-ticket/:id", cfg.Verify.VerifyTicket)

	app.Static(cfg.DocumentsURL, cfg.DocumentsDir)
}
