package order

import (
	"strings"
)

// Status is the machine-readable code for an order's current stage in the
// fulfillment workflow (e.g. "draft", "completed").
//
// The catalog of known statuses is process-wide read-only state: it is
// declared once below and never mutated. Codes outside the catalog can still
// appear on orders persisted before the catalog was introduced; lookups on
// such codes degrade gracefully (humanized label, default color, no allowed
// transitions) and never fail.
type Status string

const (
	// StatusDraft is the initial status for orders entered by checkout or admin.
	StatusDraft Status = "draft"

	// StatusEstimateSent indicates an estimate has been prepared and sent to the customer.
	StatusEstimateSent Status = "estimate_sent"

	// StatusAwaitingCustomerApproval indicates the order is parked until the customer decides.
	StatusAwaitingCustomerApproval Status = "awaiting_customer_approval"

	// StatusCustomerApproved indicates the customer accepted the estimate.
	StatusCustomerApproved Status = "customer_approved"

	// StatusInProduction indicates the job is on the production floor.
	StatusInProduction Status = "in_production"

	// StatusReadyForDelivery indicates production finished and the order awaits handover.
	StatusReadyForDelivery Status = "ready_for_delivery"

	// StatusCompleted is a terminal status: the order was delivered.
	StatusCompleted Status = "completed"

	// StatusCancelled is a terminal status. Orders are never hard-deleted;
	// cancellation is a status, not row removal.
	StatusCancelled Status = "cancelled"

	// StatusOnHold parks an order; it can resume at several earlier stages.
	StatusOnHold Status = "on_hold"
)

// DefaultStatusColor is used for codes without a catalog entry.
const DefaultStatusColor = "gray"

type catalogEntry struct {
	label       string
	color       string
	description string
	next        []Status
}

// statusCatalog declares the label, color, description and allowed next
// statuses for every known code. The edge list is the transition graph
// consulted by TransitionGuard.
var statusCatalog = map[Status]catalogEntry{
	StatusDraft: {
		label:       "Draft",
		color:       "slate",
		description: "Order entered but not yet estimated",
		next:        []Status{StatusEstimateSent, StatusCancelled, StatusOnHold},
	},
	StatusEstimateSent: {
		label:       "Estimate Sent",
		color:       "blue",
		description: "Estimate delivered to the customer",
		next:        []Status{StatusAwaitingCustomerApproval, StatusCustomerApproved, StatusCancelled, StatusOnHold},
	},
	StatusAwaitingCustomerApproval: {
		label:       "Awaiting Customer Approval",
		color:       "amber",
		description: "Waiting on the customer to accept or decline the estimate",
		next:        []Status{StatusCustomerApproved, StatusEstimateSent, StatusCancelled, StatusOnHold},
	},
	StatusCustomerApproved: {
		label:       "Customer Approved",
		color:       "green",
		description: "Customer accepted the estimate; order may enter production",
		next:        []Status{StatusInProduction, StatusCancelled, StatusOnHold},
	},
	StatusInProduction: {
		label:       "In Production",
		color:       "indigo",
		description: "Job is being produced",
		next:        []Status{StatusReadyForDelivery, StatusOnHold, StatusCancelled},
	},
	StatusReadyForDelivery: {
		label:       "Ready for Delivery",
		color:       "teal",
		description: "Production finished; awaiting dispatch or pickup",
		next:        []Status{StatusCompleted, StatusInProduction, StatusCancelled},
	},
	StatusCompleted: {
		label:       "Completed",
		color:       "emerald",
		description: "Order delivered",
		next:        nil,
	},
	StatusCancelled: {
		label:       "Cancelled",
		color:       "red",
		description: "Order cancelled",
		next:        nil,
	},
	StatusOnHold: {
		label:       "On Hold",
		color:       "orange",
		description: "Order parked; resume to an earlier stage or cancel",
		next:        []Status{StatusDraft, StatusCustomerApproved, StatusInProduction, StatusCancelled},
	},
}

// knownStatusOrder fixes the iteration order for KnownStatuses.
var knownStatusOrder = []Status{
	StatusDraft,
	StatusEstimateSent,
	StatusAwaitingCustomerApproval,
	StatusCustomerApproved,
	StatusInProduction,
	StatusReadyForDelivery,
	StatusCompleted,
	StatusCancelled,
	StatusOnHold,
}

// KnownStatuses returns all catalog statuses in workflow order.
func KnownStatuses() []Status {
	statuses := make([]Status, len(knownStatusOrder))
	copy(statuses, knownStatusOrder)
	return statuses
}

// IsKnown reports whether the code has a catalog entry.
func (s Status) IsKnown() bool {
	_, ok := statusCatalog[s]
	return ok
}

// Label returns the display label for the status. Unknown codes are
// humanized from the raw code rather than rejected, so legacy data renders.
func (s Status) Label() string {
	if entry, ok := statusCatalog[s]; ok {
		return entry.label
	}
	return humanize(string(s))
}

// Color returns the display color for the status, or DefaultStatusColor
// for codes without a catalog entry.
func (s Status) Color() string {
	if entry, ok := statusCatalog[s]; ok {
		return entry.color
	}
	return DefaultStatusColor
}

// Description returns the catalog description, empty for unknown codes.
func (s Status) Description() string {
	return statusCatalog[s].description
}

// AllowedNext returns a copy of the statuses this status may transition to.
// Terminal and unknown statuses have no outgoing edges.
func (s Status) AllowedNext() []Status {
	entry, ok := statusCatalog[s]
	if !ok || len(entry.next) == 0 {
		return nil
	}
	next := make([]Status, len(entry.next))
	copy(next, entry.next)
	return next
}

// CanTransitionTo reports whether the transition graph permits moving to
// target. A status may always "transition" to itself: no-op changes are
// permitted and produce no event.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return true
	}
	entry, ok := statusCatalog[s]
	if !ok {
		return false
	}
	for _, next := range entry.next {
		if next == target {
			return true
		}
	}
	return false
}

// String returns the raw status code.
func (s Status) String() string {
	return string(s)
}

// humanize derives a display label from a raw code: "awaiting_approval"
// becomes "Awaiting Approval".
func humanize(code string) string {
	words := strings.FieldsFunc(code, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
