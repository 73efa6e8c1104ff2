package outboxrepo

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"

	"gorm.io/gorm"
)

// GormNotificationOutbox implements NotificationOutbox using GORM.
type GormNotificationOutbox struct {
	db *gorm.DB
}

// NewGormNotificationOutbox creates a new GORM outbox repository.
func NewGormNotificationOutbox(db *gorm.DB) *GormNotificationOutbox {
	return &GormNotificationOutbox{db: db}
}

// Enqueue stores a pending notification.
func (r *GormNotificationOutbox) Enqueue(ctx context.Context, notification *ports.Notification) error {
	dto := fromDomain(notification)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// PendingBatch returns up to limit pending notifications, oldest first.
func (r *GormNotificationOutbox) PendingBatch(ctx context.Context, limit int) ([]*ports.Notification, error) {
	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).
		Where("state = ?", StatePending).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	notifications := make([]*ports.Notification, 0, len(dtos))
	for _, dto := range dtos {
		notification, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

// MarkSent records a successful delivery.
func (r *GormNotificationOutbox) MarkSent(ctx context.Context, id kernel.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"state":   StateSent,
			"sent_at": &now,
		}).Error
}

// MarkFailed records a failed delivery attempt. The row stays failed until
// an operator requeues it; the dispatch job does not retry on its own.
func (r *GormNotificationOutbox) MarkFailed(ctx context.Context, id kernel.UUID, reason string) error {
	return r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"state":      StateFailed,
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		}).Error
}
