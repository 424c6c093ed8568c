package model

import "time"

const (
	TxStatusSuccess   = "SUCCESS"
	TxStatusFailed    = "FAILED"
	TxStatusCancelled = "CANCELLED"
)

// WebhookPayload is the gateway's asynchronous payment notification. The
// shape is validated before any business logic runs; the signature is an
// HMAC over the canonical field concatenation (see gateway.Client).
type WebhookPayload struct {
	OrderID     string `json:"orderId" validate:"required"`
	OrderAmount string `json:"orderAmount" validate:"required"`
	ReferenceID string `json:"referenceId"`
	TxStatus    string `json:"txStatus" validate:"required,oneof=SUCCESS FAILED CANCELLED"`
	PaymentMode string `json:"paymentMode"`
	TxMsg       string `json:"txMsg"`
	TxTime      string `json:"txTime"`
	Signature   string `json:"signature" validate:"required"`
}

// IdempotencyKey prefers the gateway payment id; a delivery without one falls
// back to the gateway event time. Never the local clock: that would make
// retries of the same event look new.
func (p WebhookPayload) IdempotencyKey() string {
	if p.ReferenceID != "" {
		return p.OrderID + "|" + p.ReferenceID
	}
	return p.OrderID + "|" + p.TxTime
}

// HasIdempotencySource reports whether the payload carries enough to
// deduplicate on. Payloads without either field are rejected as malformed.
func (p WebhookPayload) HasIdempotencySource() bool {
	return p.ReferenceID != "" || p.TxTime != ""
}

// ProcessedWebhook is the append-only dedup log for webhook deliveries.
type ProcessedWebhook struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	IdempotencyKey string    `gorm:"uniqueIndex;size:128" json:"idempotencyKey"`
	OrderID        string    `gorm:"size:64;index" json:"orderId"`
	TxStatus       string    `gorm:"size:16" json:"txStatus"`
	ProcessedAt    time.Time `json:"processedAt"`
}
