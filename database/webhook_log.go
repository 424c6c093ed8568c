package database

import (
	"booking_manager/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WebhookLog is the append-only processed-webhooks table keyed by
// idempotency key.
type WebhookLog struct {
	db *gorm.DB
}

func NewWebhookLog(db *gorm.DB) *WebhookLog {
	return &WebhookLog{db: db}
}

func (l *WebhookLog) Seen(ctx context.Context, key string) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).Model(&model.ProcessedWebhook{}).
		Where("idempotency_key = ?", key).
		Count(&count).Error
	return count > 0, err
}

// Record inserts with insert-if-absent semantics: a concurrent duplicate
// delivery racing past Seen lands on the unique index and is dropped.
func (l *WebhookLog) Record(ctx context.Context, rec *model.ProcessedWebhook) error {
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rec).Error
}
