package ports

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// Notification is one queued status-change email. Rows are written in the
// same transaction as the status change (outbox pattern) and delivered
// asynchronously by the dispatch job, so a crashed mailer never loses a
// notification and a failed transaction never sends one.
type Notification struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	OrderNumber   string
	Recipient     string
	OldStatus     order.Status
	NewStatus     order.Status
	TrackingToken string
	CreatedAt     time.Time
}

// NotificationOutbox defines the persistence contract for queued notifications.
type NotificationOutbox interface {
	// Enqueue inserts a pending notification.
	Enqueue(ctx context.Context, notification *Notification) error

	// PendingBatch retrieves up to limit undelivered notifications, oldest first.
	PendingBatch(ctx context.Context, limit int) ([]*Notification, error)

	// MarkSent records successful delivery.
	MarkSent(ctx context.Context, id kernel.UUID) error

	// MarkFailed records a delivery failure; the row leaves the pending set
	// until an operator requeues it.
	MarkFailed(ctx context.Context, id kernel.UUID, reason string) error
}

// Notifier sends a status-change notification to the customer, including a
// signed tracking link derived from the order's current tracking token.
type Notifier interface {
	SendStatusChanged(ctx context.Context, notification *Notification) error
}
