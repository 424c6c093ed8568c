package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
	StatusFailed    PaymentStatus = "failed"
	StatusRefunded  PaymentStatus = "refunded"
)

// ExpiryWindow is how long a pending booking keeps its invite code before it
// is treated as abandoned.
const ExpiryWindow = 7 * time.Minute

type Booking struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	InviteCode string `gorm:"size:32;index" json:"inviteCode"`

	CustomerName  string `gorm:"size:128" json:"customerName"`
	CustomerEmail string `gorm:"size:128" json:"customerEmail"`
	CustomerPhone string `gorm:"size:32" json:"customerPhone"`

	TicketType  string          `gorm:"size:32" json:"ticketType"`
	TicketCount int             `json:"ticketCount"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"totalAmount"`

	PaymentStatus    PaymentStatus `gorm:"size:16;index;default:pending" json:"paymentStatus"`
	PaymentMethod    string        `gorm:"size:32" json:"paymentMethod"`
	GatewayOrderID   string        `gorm:"size:64;index" json:"gatewayOrderId"`
	GatewayPaymentID string        `gorm:"size:64" json:"gatewayPaymentId"`

	ReferenceNumber string `gorm:"uniqueIndex;size:16" json:"referenceNumber"`
	EmailSent       bool   `json:"emailSent"`
	CheckedIn       bool   `json:"checkedIn"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether a booking is expired-pending: stuck in pending
// past its expiry window. Terminal bookings never expire.
func IsExpired(b Booking, now time.Time) bool {
	return b.PaymentStatus == StatusPending && now.After(b.ExpiresAt)
}

// NormalizeInviteCode is applied to every code that enters the system.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type CreateBookingInput struct {
	InviteCode    string `json:"inviteCode" validate:"required,min=4,max=32"`
	CustomerName  string `json:"customerName" validate:"required,min=2,max=128"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	CustomerPhone string `json:"customerPhone" validate:"required,min=7,max=20"`
	TicketType    string `json:"ticketType" validate:"required"`
	TicketCount   int    `json:"ticketCount" validate:"required,gt=0"`
}
