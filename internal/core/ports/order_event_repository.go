package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// OrderEventRepository defines the persistence contract for the append-only
// order audit trail. There are deliberately no update or delete operations:
// events are immutable once written.
type OrderEventRepository interface {
	// Add inserts one audit event.
	Add(ctx context.Context, event *order.Event) error

	// ListForOrder retrieves the order's events newest first, keeping only
	// those whose visibility is in the given set. Customer-facing timelines
	// pass {customer, public}; admin timelines pass all three scopes.
	ListForOrder(ctx context.Context, orderID kernel.UUID, visibilities []order.Visibility) ([]*order.Event, error)

	// CountForOrder returns the number of events recorded for the order
	// across all visibility scopes.
	CountForOrder(ctx context.Context, orderID kernel.UUID) (int64, error)
}
