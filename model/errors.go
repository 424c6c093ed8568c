package model

import (
	"errors"
	"fmt"
)

var (
	ErrInviteInvalid       = errors.New("invite code is not valid")
	ErrTicketTypeInvalid   = errors.New("unknown ticket type")
	ErrTicketCountInvalid  = errors.New("ticket count out of range")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
)

// AlreadyBookedError carries the existing booking so callers can render
// "already booked" with its reference instead of a generic failure.
type AlreadyBookedError struct {
	Booking *Booking
}

func (e *AlreadyBookedError) Error() string {
	return fmt.Sprintf("invite code %s already used by booking %s", e.Booking.InviteCode, e.Booking.ID)
}
