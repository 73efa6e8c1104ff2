// Package ports defines the persistence and notification contracts between
// the domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The write carries an optimistic version check: when the stored row's
	// version no longer matches the aggregate's, Update fails with
	// errs.ErrConcurrentModification and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status,
	// ordered by order number. The stable ordering keeps batch processing
	// (status migration in particular) deterministic run-to-run.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// CountByStatus returns the number of orders per distinct status value,
	// including codes without a catalog entry.
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
