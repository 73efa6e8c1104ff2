// Package commands contains business operations that modify system state.
// All commands follow a consistent pattern: constructor validation, explicit
// transaction management through a unit of work, and persistence via ports.
package commands

import (
	"context"

	"orderdesk/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across the order row, its audit
// trail and the notification outbox.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// EventRepoFactory provides access to the audit-event repository within a transaction.
	EventRepoFactory interface {
		OrderEventRepository() ports.OrderEventRepository
	}

	// OutboxFactory provides access to the notification outbox within a transaction.
	OutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	// OrderUoW manages transactions for operations that touch the order and
	// its audit trail but send no notification (migration, token rotation).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		EventRepoFactory
	}

	// OrderUoWFactory creates new OrderUoW instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions for notifying status changes: order row,
	// audit event and outbox row commit or roll back together.
	UoW interface {
		TxManager
		OrderRepoFactory
		EventRepoFactory
		OutboxFactory
	}

	// UoWFactory creates new UoW instances.
	UoWFactory interface {
		Create() UoW
	}
)
