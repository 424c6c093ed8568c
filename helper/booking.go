package helper

import (
	"booking_manager/model"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// BookingStore is what the lifecycle layer needs from persistence. Implemented
// by database.BookingStore; faked in tests.
type BookingStore interface {
	Insert(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByInviteCode(ctx context.Context, code string) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.PaymentStatus, paymentID string) (*model.Booking, bool, error)
	RefundCompleted(ctx context.Context, id string) (*model.Booking, bool, error)
	MarkEmailSent(ctx context.Context, id string) (bool, error)
	MarkCheckedIn(ctx context.Context, referenceNumber string) (*model.Booking, bool, error)
	DeletePending(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	DeleteExpiredPending(ctx context.Context, now time.Time) (int64, error)
}

// InviteChecker is the registry surface the manager depends on.
type InviteChecker interface {
	IsValid(ctx context.Context, code string) bool
}

// BookingManager drives the booking lifecycle: creation against invite codes,
// live reclamation of expired pending bookings, and the administrative
// transitions.
type BookingManager struct {
	store    BookingStore
	registry InviteChecker
	refs     *ReferenceGenerator
	clock    Clock
}

func NewBookingManager(store BookingStore, registry InviteChecker, refs *ReferenceGenerator, clock Clock) *BookingManager {
	return &BookingManager{
		store:    store,
		registry: registry,
		refs:     refs,
		clock:    clock,
	}
}

// CreateBooking validates the invite code and purchase terms and persists a
// pending booking with an expiry window. An expired-pending holder of the
// same code is deleted here; this is the only place stale bookings are
// physically removed outside the periodic sweep.
func (m *BookingManager) CreateBooking(ctx context.Context, in model.CreateBookingInput) (*model.Booking, error) {
	code := model.NormalizeInviteCode(in.InviteCode)
	if !m.registry.IsValid(ctx, code) {
		return nil, model.ErrInviteInvalid
	}

	now := m.clock.Now()
	existing, err := m.store.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !model.IsExpired(*existing, now) {
			return nil, &model.AlreadyBookedError{Booking: existing}
		}
		deleted, err := m.store.DeletePending(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		if !deleted {
			// A payment confirmation landed between the read above and the
			// reclaim. The holder is terminal now, so the code is genuinely
			// used; only a concurrent sweep deleting the row frees it.
			current, err := m.store.GetByID(ctx, existing.ID)
			if err != nil {
				return nil, err
			}
			if current != nil {
				return nil, &model.AlreadyBookedError{Booking: current}
			}
		} else {
			log.Printf("booking %s reclaimed: expired pending on code %s", existing.ID, code)
		}
	}

	ticketType, ok := model.TicketTypeByName(in.TicketType)
	if !ok {
		return nil, model.ErrTicketTypeInvalid
	}
	if in.TicketCount < 1 || in.TicketCount > ticketType.MaxPerBooking {
		return nil, fmt.Errorf("%w: max %d for %s", model.ErrTicketCountInvalid, ticketType.MaxPerBooking, ticketType.Name)
	}

	booking := model.Booking{}
	if err := copier.Copy(&booking, &in); err != nil {
		return nil, err
	}
	booking.ID = uuid.NewString()
	booking.InviteCode = code
	booking.TotalAmount = ticketType.Price.Mul(decimal.NewFromInt(int64(in.TicketCount)))
	booking.PaymentStatus = model.StatusPending
	booking.GatewayOrderID = booking.ID
	booking.ReferenceNumber = m.refs.Next()
	booking.ExpiresAt = now.Add(model.ExpiryWindow)

	if err := m.store.Insert(ctx, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// InviteStatus joins registry membership with the booking store. An
// expired-pending holder is reported as unused: the code is reclaimed live on
// read, no background sweep required.
func (m *BookingManager) InviteStatus(ctx context.Context, code string) (model.InviteCodeStatus, error) {
	code = model.NormalizeInviteCode(code)
	status := model.InviteCodeStatus{Code: code}

	if !m.registry.IsValid(ctx, code) {
		return status, nil
	}
	status.IsValid = true

	booking, err := m.store.GetByInviteCode(ctx, code)
	if err != nil {
		return status, err
	}
	if booking == nil || model.IsExpired(*booking, m.clock.Now()) {
		return status, nil
	}
	status.IsUsed = true
	status.Booking = booking
	return status, nil
}

func (m *BookingManager) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	return m.store.GetByID(ctx, id)
}

func (m *BookingManager) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return m.store.ListAll(ctx)
}

// Refund is the manual completed→refunded transition. Refunding does not free
// the invite code.
func (m *BookingManager) Refund(ctx context.Context, id string) (*model.Booking, error) {
	booking, changed, err := m.store.RefundCompleted(ctx, id)
	if err != nil {
		return nil, err
	}
	if !changed && booking.PaymentStatus != model.StatusRefunded {
		return nil, model.ErrBookingNotCompleted
	}
	return booking, nil
}

// CheckIn marks a completed booking as checked in by reference number.
// Repeated scans report the booking with changed=false.
func (m *BookingManager) CheckIn(ctx context.Context, referenceNumber string) (*model.Booking, bool, error) {
	booking, changed, err := m.store.MarkCheckedIn(ctx, referenceNumber)
	if err != nil {
		return nil, false, err
	}
	if !changed && !booking.CheckedIn {
		return nil, false, model.ErrBookingNotCompleted
	}
	return booking, changed, nil
}

// ReclaimExpired is the periodic-sweep entry point.
func (m *BookingManager) ReclaimExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpiredPending(ctx, m.clock.Now())
}
