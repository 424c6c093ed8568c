// Package testutil provides in-memory fakes for the storage interfaces so
// service and handler tests run without a database.
package testutil

import (
	"booking_manager/model"
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore is an in-memory BookingStore with the same conditional-update
// semantics as the postgres implementation. Safe for concurrent use, which
// the reconciliation race tests rely on.
type MemStore struct {
	mu       sync.Mutex
	bookings map[string]model.Booking
}

func NewMemStore() *MemStore {
	return &MemStore{bookings: make(map[string]model.Booking)}
}

// Seed inserts a booking bypassing the public API.
func (s *MemStore) Seed(b model.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
}

// Get returns a snapshot of a booking for assertions.
func (s *MemStore) Get(id string) (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

func (s *MemStore) Insert(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	s.bookings[b.ID] = *b
	return nil
}

func (s *MemStore) GetByID(_ context.Context, id string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	copy := b
	return &copy, nil
}

func (s *MemStore) GetByInviteCode(_ context.Context, code string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []model.Booking
	for _, b := range s.bookings {
		if b.InviteCode == code {
			matches = append(matches, b)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	for _, b := range matches {
		if b.PaymentStatus == model.StatusCompleted || b.PaymentStatus == model.StatusRefunded {
			copy := b
			return &copy, nil
		}
	}
	for _, b := range matches {
		if b.PaymentStatus == model.StatusPending {
			copy := b
			return &copy, nil
		}
	}
	return nil, nil
}

func (s *MemStore) UpdateStatus(_ context.Context, id string, status model.PaymentStatus, paymentID string) (*model.Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, false, model.ErrBookingNotFound
	}
	if b.PaymentStatus != model.StatusPending {
		copy := b
		return &copy, false, nil
	}
	b.PaymentStatus = status
	if paymentID != "" {
		b.GatewayPaymentID = paymentID
	}
	b.UpdatedAt = time.Now().UTC()
	s.bookings[id] = b
	copy := b
	return &copy, true, nil
}

func (s *MemStore) RefundCompleted(_ context.Context, id string) (*model.Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, false, model.ErrBookingNotFound
	}
	if b.PaymentStatus != model.StatusCompleted {
		copy := b
		return &copy, false, nil
	}
	b.PaymentStatus = model.StatusRefunded
	s.bookings[id] = b
	copy := b
	return &copy, true, nil
}

func (s *MemStore) MarkEmailSent(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || b.EmailSent {
		return false, nil
	}
	b.EmailSent = true
	s.bookings[id] = b
	return true, nil
}

func (s *MemStore) MarkCheckedIn(_ context.Context, referenceNumber string) (*model.Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, b := range s.bookings {
		if b.ReferenceNumber != referenceNumber {
			continue
		}
		if b.PaymentStatus != model.StatusCompleted || b.CheckedIn {
			copy := b
			return &copy, false, nil
		}
		b.CheckedIn = true
		s.bookings[id] = b
		copy := b
		return &copy, true, nil
	}
	return nil, false, model.ErrBookingNotFound
}

func (s *MemStore) DeletePending(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.PaymentStatus != model.StatusPending {
		return false, nil
	}
	delete(s.bookings, id)
	return true, nil
}

// Remove drops a booking bypassing the status guard, for tests that need a
// row to vanish outright.
func (s *MemStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookings, id)
}

func (s *MemStore) ListAll(_ context.Context) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemStore) DeleteExpiredPending(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, b := range s.bookings {
		if model.IsExpired(b, now) {
			delete(s.bookings, id)
			n++
		}
	}
	return n, nil
}

// MemWebhookLog is an in-memory processed-webhooks log.
type MemWebhookLog struct {
	mu   sync.Mutex
	seen map[string]model.ProcessedWebhook
}

func NewMemWebhookLog() *MemWebhookLog {
	return &MemWebhookLog{seen: make(map[string]model.ProcessedWebhook)}
}

func (l *MemWebhookLog) Seen(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[key]
	return ok, nil
}

func (l *MemWebhookLog) Record(_ context.Context, rec *model.ProcessedWebhook) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[rec.IdempotencyKey]; ok {
		return nil
	}
	l.seen[rec.IdempotencyKey] = *rec
	return nil
}

// Count reports how many distinct deliveries were recorded.
func (l *MemWebhookLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}
