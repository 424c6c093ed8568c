package helper

import (
	"booking_manager/model"
	"booking_manager/monitoring"
	"context"
	"log"
	"sync"
)

// EmailSender delivers customer-facing mail. Implemented by utils.Mailer.
type EmailSender interface {
	SendTicket(b model.Booking) error
	SendPaymentFailed(b model.Booking, reason string) error
}

// SheetSyncer upserts a booking row into the shared spreadsheet.
type SheetSyncer interface {
	UpsertBooking(ctx context.Context, b model.Booking) error
}

type taskKind int

const (
	taskTicketEmail taskKind = iota
	taskSheetSync
	taskFailureEmail
)

type task struct {
	kind    taskKind
	booking model.Booking
	reason  string
}

// Dispatcher runs side effects off the request path on a single worker.
// Enqueueing never blocks the caller; a full queue drops the task with a loud
// log rather than stalling a payment transition. Email and sheet sync are
// separate tasks so a failure of one never affects the other.
type Dispatcher struct {
	store BookingStore
	mail  EmailSender
	sheet SheetSyncer

	tasks chan task
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(store BookingStore, mail EmailSender, sheet SheetSyncer) *Dispatcher {
	d := &Dispatcher{
		store: store,
		mail:  mail,
		sheet: sheet,
		tasks: make(chan task, 256),
	}
	go d.run()
	return d
}

// BookingCompleted fires the ticket email and the spreadsheet sync for a
// booking that just transitioned to completed.
func (d *Dispatcher) BookingCompleted(b model.Booking) {
	d.enqueue(task{kind: taskTicketEmail, booking: b})
	d.enqueue(task{kind: taskSheetSync, booking: b})
}

// PaymentFailed notifies the customer that the payment did not go through and
// that the invite code frees up after the expiry window.
func (d *Dispatcher) PaymentFailed(b model.Booking, reason string) {
	d.enqueue(task{kind: taskFailureEmail, booking: b, reason: reason})
}

func (d *Dispatcher) enqueue(t task) {
	d.wg.Add(1)
	select {
	case d.tasks <- t:
	default:
		d.wg.Done()
		log.Printf("dispatcher queue full, dropped task kind=%d booking=%s", t.kind, t.booking.ID)
	}
}

// Drain blocks until every enqueued task has been processed. Used by tests
// and shutdown.
func (d *Dispatcher) Drain() {
	d.wg.Wait()
}

// Close stops the worker after the queue empties.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		d.wg.Wait()
		close(d.tasks)
	})
}

func (d *Dispatcher) run() {
	for t := range d.tasks {
		d.process(t)
		d.wg.Done()
	}
}

func (d *Dispatcher) process(t task) {
	ctx := context.Background()
	switch t.kind {
	case taskTicketEmail:
		d.sendTicketEmail(ctx, t.booking.ID)
	case taskSheetSync:
		if err := d.sheet.UpsertBooking(ctx, t.booking); err != nil {
			monitoring.SheetSyncFailures.Inc()
			log.Printf("sheet sync failed for booking %s: %v", t.booking.ID, err)
		}
	case taskFailureEmail:
		if err := d.mail.SendPaymentFailed(t.booking, t.reason); err != nil {
			log.Printf("failure email for booking %s not sent: %v", t.booking.ID, err)
		}
	}
}

// sendTicketEmail re-reads the email_sent flag from storage right before
// sending, then claims it only after a successful send. A crash between send
// and claim can duplicate one email; the inverse order could lose it
// entirely. At-most-duplicate is the accepted tradeoff.
func (d *Dispatcher) sendTicketEmail(ctx context.Context, bookingID string) {
	booking, err := d.store.GetByID(ctx, bookingID)
	if err != nil {
		log.Printf("ticket email: reload of booking %s failed: %v", bookingID, err)
		return
	}
	if booking == nil || booking.EmailSent {
		return
	}

	if err := d.mail.SendTicket(*booking); err != nil {
		log.Printf("ticket email for booking %s not sent: %v", bookingID, err)
		return
	}
	monitoring.TicketEmailsSent.Inc()

	if _, err := d.store.MarkEmailSent(ctx, bookingID); err != nil {
		log.Printf("ticket email flag for booking %s not persisted: %v", bookingID, err)
	}
}
