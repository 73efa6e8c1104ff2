package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary: one status change
// covers exactly read -> validate -> write status -> append event(s), and the
// whole unit commits or rolls back together. Client code must explicitly
// manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction, or to the main connection when none is active.
	OrderRepository() OrderRepository

	// OrderEventRepository returns an OrderEventRepository bound to the
	// current transaction, or to the main connection when none is active.
	OrderEventRepository() OrderEventRepository

	// NotificationOutbox returns a NotificationOutbox bound to the current
	// transaction, or to the main connection when none is active.
	NotificationOutbox() NotificationOutbox
}
