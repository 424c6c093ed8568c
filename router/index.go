package router

import (
	"booking_manager/handler"
	"booking_manager/middleware"
	"booking_manager/monitoring"
	"booking_manager/security"
	"booking_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler, limiter *security.RateLimiter) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", monitoring.Handler())

	// Server-to-server callback from the gateway; never rate limited.
	app.Post("/cashfree/webhook", h.PaymentWebhook)

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	bookings := v1.Group("/bookings", limiter.Limit("bookings"))
	bookings.Post("/", validate.CreateBooking(), h.CreateBooking)
	bookings.Get("/:orderId", h.GetBooking)

	invite := v1.Group("/invite", limiter.Limit("invite"))
	invite.Post("/check", validate.CheckInvite(), h.CheckInvite)

	payments := v1.Group("/payments", limiter.Limit("payments"))
	payments.Post("/verify", validate.VerifyPayment(), h.VerifyPayment)

	admin := v1.Group("/admin")
	admin.Post("/login", validate.AdminLogin(), h.AdminLogin)
	admin.Get("/bookings", middleware.Protected(), h.ListBookings)
	admin.Post("/bookings/:orderId/refund", middleware.Protected(), h.RefundBooking)
	admin.Post("/checkin", middleware.Protected(), validate.CheckIn(), h.CheckInBooking)
}
