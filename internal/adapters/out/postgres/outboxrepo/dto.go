// Package outboxrepo persists queued status-change notifications. Rows are
// written in the same transaction as the status change and dispatched later
// by a background job, so a crash between commit and send never loses the
// notification.
package outboxrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"

	"github.com/google/uuid"
)

// Delivery states of an outbox row.
const (
	StatePending = "pending"
	StateSent    = "sent"
	StateFailed  = "failed"
)

// NotificationDTO represents the database structure for queued notifications.
type NotificationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	OrderNumber   string
	Recipient     string
	OldStatus     string
	NewStatus     string
	TrackingToken string
	State         string `gorm:"index"`
	Attempts      int
	LastError     string
	CreatedAt     time.Time
	SentAt        *time.Time
}

// TableName overrides GORM's default naming convention.
func (NotificationDTO) TableName() string {
	return "notification_outbox"
}

func fromDomain(notification *ports.Notification) NotificationDTO {
	return NotificationDTO{
		ID:            notification.ID.Bytes(),
		OrderID:       notification.OrderID.Bytes(),
		OrderNumber:   notification.OrderNumber,
		Recipient:     notification.Recipient,
		OldStatus:     string(notification.OldStatus),
		NewStatus:     string(notification.NewStatus),
		TrackingToken: notification.TrackingToken,
		State:         StatePending,
		CreatedAt:     notification.CreatedAt,
	}
}

func toDomain(dto NotificationDTO) (*ports.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return &ports.Notification{
		ID:            id,
		OrderID:       orderID,
		OrderNumber:   dto.OrderNumber,
		Recipient:     dto.Recipient,
		OldStatus:     order.Status(dto.OldStatus),
		NewStatus:     order.Status(dto.NewStatus),
		TrackingToken: dto.TrackingToken,
		CreatedAt:     dto.CreatedAt,
	}, nil
}
