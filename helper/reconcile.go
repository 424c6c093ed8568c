package helper

import (
	"booking_manager/model"
	"booking_manager/monitoring"
	"context"
	"log"
)

// WebhookLog is the persisted dedup log for gateway deliveries.
type WebhookLog interface {
	Seen(ctx context.Context, key string) (bool, error)
	Record(ctx context.Context, rec *model.ProcessedWebhook) error
}

// PaymentGateway is the slice of the gateway client reconciliation needs:
// signature verification for the webhook channel and the authoritative status
// query for the return-redirect channel.
type PaymentGateway interface {
	VerifySignature(p model.WebhookPayload) bool
	OrderStatus(ctx context.Context, orderID string) (string, error)
}

// Notifier receives fire-and-forget side effects. Implemented by the
// dispatcher; calls must not block.
type Notifier interface {
	BookingCompleted(b model.Booking)
	PaymentFailed(b model.Booking, reason string)
}

// Reconciler converges a booking's status with the gateway's record. Two
// channels race into it — the asynchronous webhook and the return-redirect
// verification poll — and both funnel through apply, so whichever observes
// success first performs the transition and the other becomes a no-op.
type Reconciler struct {
	store   BookingStore
	log     WebhookLog
	gateway PaymentGateway
	notify  Notifier
	clock   Clock
}

func NewReconciler(store BookingStore, webhookLog WebhookLog, gateway PaymentGateway, notify Notifier, clock Clock) *Reconciler {
	return &Reconciler{
		store:   store,
		log:     webhookLog,
		gateway: gateway,
		notify:  notify,
		clock:   clock,
	}
}

// HandleWebhook processes a shape-validated gateway notification.
// Returns replay=true for deliveries already in the idempotency log; those
// must be answered with success and no side effects.
func (r *Reconciler) HandleWebhook(ctx context.Context, p model.WebhookPayload) (replay bool, err error) {
	if !r.gateway.VerifySignature(p) {
		log.Printf("webhook rejected: bad signature, order=%s txStatus=%s referenceId=%s",
			p.OrderID, p.TxStatus, p.ReferenceID)
		monitoring.WebhooksProcessed.WithLabelValues("bad_signature").Inc()
		return false, model.ErrInvalidSignature
	}

	key := p.IdempotencyKey()
	seen, err := r.log.Seen(ctx, key)
	if err != nil {
		return false, err
	}
	if seen {
		monitoring.WebhookDuplicates.Inc()
		return true, nil
	}

	booking, err := r.store.GetByID(ctx, p.OrderID)
	if err != nil {
		return false, err
	}
	if booking == nil {
		log.Printf("webhook for unknown order %s", p.OrderID)
		monitoring.WebhooksProcessed.WithLabelValues("unknown_order").Inc()
		return false, model.ErrBookingNotFound
	}

	switch p.TxStatus {
	case model.TxStatusSuccess:
		if _, _, err := r.apply(ctx, p.OrderID, model.StatusCompleted, p.ReferenceID); err != nil {
			return false, err
		}
		monitoring.WebhooksProcessed.WithLabelValues("success").Inc()
	default: // FAILED, CANCELLED
		b, transitioned, err := r.apply(ctx, p.OrderID, model.StatusFailed, p.ReferenceID)
		if err != nil {
			return false, err
		}
		if transitioned {
			r.notify.PaymentFailed(*b, p.TxMsg)
		}
		monitoring.WebhooksProcessed.WithLabelValues("failed").Inc()
	}

	// Recorded after handling, on both branches, so a retry of a
	// failed-payment webhook does not re-send the failure email.
	rec := &model.ProcessedWebhook{
		IdempotencyKey: key,
		OrderID:        p.OrderID,
		TxStatus:       p.TxStatus,
		ProcessedAt:    r.clock.Now(),
	}
	if err := r.log.Record(ctx, rec); err != nil {
		log.Printf("webhook log record failed for %s: %v", key, err)
	}
	return false, nil
}

// VerifyPayment backs the return-redirect channel. It asks the gateway for
// the authoritative status and feeds terminal outcomes through the same apply
// path as the webhook; it never trusts redirect arrival and never marks a
// booking completed on its own.
func (r *Reconciler) VerifyPayment(ctx context.Context, orderID string) (model.PaymentStatus, error) {
	booking, err := r.store.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if booking == nil {
		return "", model.ErrBookingNotFound
	}

	gatewayStatus, err := r.gateway.OrderStatus(ctx, orderID)
	if err != nil {
		return "", err
	}

	switch gatewayStatus {
	case "PAID":
		if _, _, err := r.apply(ctx, orderID, model.StatusCompleted, ""); err != nil {
			return "", err
		}
		return model.StatusCompleted, nil
	case "EXPIRED", "CANCELLED", "TERMINATED":
		if _, _, err := r.apply(ctx, orderID, model.StatusFailed, ""); err != nil {
			return "", err
		}
		return model.StatusFailed, nil
	default: // ACTIVE and anything unrecognized stays pending
		return model.StatusPending, nil
	}
}

// apply performs the conditional transition and fires completion side effects
// exactly when this caller won the race.
func (r *Reconciler) apply(ctx context.Context, orderID string, status model.PaymentStatus, paymentID string) (*model.Booking, bool, error) {
	booking, transitioned, err := r.store.UpdateStatus(ctx, orderID, status, paymentID)
	if err != nil {
		return nil, false, err
	}
	if !transitioned {
		return booking, false, nil
	}

	monitoring.PaymentTransitions.WithLabelValues(string(status)).Inc()
	log.Printf("booking %s transitioned to %s (ref %s)", booking.ID, status, booking.ReferenceNumber)

	if status == model.StatusCompleted {
		r.notify.BookingCompleted(*booking)
	}
	return booking, true, nil
}
