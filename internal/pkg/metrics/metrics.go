// Package metrics exposes Prometheus counters for the order status
// lifecycle. Counters are registered on the default registry at init time
// via promauto and served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StatusTransitionsTotal counts committed guarded status transitions.
	StatusTransitionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "orderdesk",
		Name:      "status_transitions_total",
		Help:      "Number of committed order status transitions.",
	})

	// StatusTransitionsRejectedTotal counts transitions refused by the
	// transition rules before any write happened.
	StatusTransitionsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "orderdesk",
		Name:      "status_transitions_rejected_total",
		Help:      "Number of order status transitions rejected by transition rules.",
	})

	// StatusMigrationRowsTotal counts rows remapped by batch status
	// migrations, labeled by outcome (migrated, skipped, error).
	StatusMigrationRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderdesk",
		Name:      "status_migration_rows_total",
		Help:      "Number of order rows processed by status migrations, by outcome.",
	}, []string{"outcome"})

	// NotificationsSentTotal counts outbox notifications handed to the
	// mail transport, labeled by result (sent, failed).
	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderdesk",
		Name:      "notifications_sent_total",
		Help:      "Number of status change notifications dispatched, by result.",
	}, []string{"result"})
)

// Migration row outcomes.
const (
	OutcomeMigrated = "migrated"
	OutcomeSkipped  = "skipped"
	OutcomeError    = "error"
)

// Notification results.
const (
	ResultSent   = "sent"
	ResultFailed = "failed"
)
