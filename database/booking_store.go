package database

import (
	"booking_manager/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// BookingStore is the single mutation point for booking rows. Status changes
// go through conditional updates so that concurrent callers can never move a
// booking out of a terminal state.
type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) Insert(ctx context.Context, b *model.Booking) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *BookingStore) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByInviteCode returns the booking that currently claims a code: the most
// recent completed (or refunded-after-completed) booking wins over any stale
// pending one.
func (s *BookingStore) GetByInviteCode(ctx context.Context, code string) (*model.Booking, error) {
	var b model.Booking
	err := s.db.WithContext(ctx).
		Where("invite_code = ? AND payment_status IN ?", code,
			[]model.PaymentStatus{model.StatusCompleted, model.StatusRefunded}).
		Order("created_at DESC").
		First(&b).Error
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Where("invite_code = ? AND payment_status = ?", code, model.StatusPending).
		Order("created_at DESC").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateStatus transitions a pending booking to a terminal status. The WHERE
// on the current status is the load-bearing race guard: whichever caller wins
// sees transitioned=true, everyone else gets the row as-is. A booking already
// in the requested state is a safe no-op.
func (s *BookingStore) UpdateStatus(ctx context.Context, id string, status model.PaymentStatus, paymentID string) (*model.Booking, bool, error) {
	updates := map[string]interface{}{"payment_status": status}
	if paymentID != "" {
		updates["gateway_payment_id"] = paymentID
	}

	res := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND payment_status = ?", id, model.StatusPending).
		Updates(updates)
	if res.Error != nil {
		return nil, false, res.Error
	}

	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if b == nil {
		return nil, false, model.ErrBookingNotFound
	}
	return b, res.RowsAffected == 1, nil
}

// RefundCompleted is the administrative completed→refunded transition.
func (s *BookingStore) RefundCompleted(ctx context.Context, id string) (*model.Booking, bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND payment_status = ?", id, model.StatusCompleted).
		Update("payment_status", model.StatusRefunded)
	if res.Error != nil {
		return nil, false, res.Error
	}

	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if b == nil {
		return nil, false, model.ErrBookingNotFound
	}
	return b, res.RowsAffected == 1, nil
}

// MarkEmailSent claims the one-shot email flag. Returns false when another
// sender already claimed it.
func (s *BookingStore) MarkEmailSent(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND email_sent = ?", id, false).
		Update("email_sent", true)
	return res.RowsAffected == 1, res.Error
}

// MarkCheckedIn flips the check-in flag for a completed booking looked up by
// its guest-facing reference number.
func (s *BookingStore) MarkCheckedIn(ctx context.Context, referenceNumber string) (*model.Booking, bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("reference_number = ? AND payment_status = ? AND checked_in = ?",
			referenceNumber, model.StatusCompleted, false).
		Update("checked_in", true)
	if res.Error != nil {
		return nil, false, res.Error
	}

	var b model.Booking
	err := s.db.WithContext(ctx).First(&b, "reference_number = ?", referenceNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, model.ErrBookingNotFound
	}
	if err != nil {
		return nil, false, err
	}
	return &b, res.RowsAffected == 1, nil
}

// DeletePending is the narrow reclamation path for expired pending bookings;
// there is no general delete API. The status condition is the same race guard
// as UpdateStatus: a booking that got paid between the caller's read and this
// delete is left untouched and reported as not deleted.
func (s *BookingStore) DeletePending(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND payment_status = ?", id, model.StatusPending).
		Delete(&model.Booking{})
	return res.RowsAffected == 1, res.Error
}

func (s *BookingStore) ListAll(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

// DeleteExpiredPending bulk-reclaims abandoned pending bookings. Used by the
// periodic sweep; lazy on-read reclamation stays authoritative.
func (s *BookingStore) DeleteExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("payment_status = ? AND expires_at < ?", model.StatusPending, now).
		Delete(&model.Booking{})
	return res.RowsAffected, res.Error
}
