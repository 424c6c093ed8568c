package monitoring

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Bookings persisted as pending",
	})

	WebhooksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhooks_processed_total",
		Help: "Gateway webhooks by outcome",
	}, []string{"outcome"})

	WebhookDuplicates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_duplicates_total",
		Help: "Webhook deliveries short-circuited by the idempotency log",
	})

	PaymentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_transitions_total",
		Help: "Booking status transitions by target status",
	}, []string{"status"})

	TicketEmailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticket_emails_sent_total",
		Help: "Ticket confirmation emails delivered",
	})

	SheetSyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sheet_sync_failures_total",
		Help: "Spreadsheet upserts that failed and were swallowed",
	})

	ExpiredReclaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "expired_bookings_reclaimed_total",
		Help: "Expired pending bookings deleted by the sweep",
	})
)

// Handler exposes the prometheus registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
