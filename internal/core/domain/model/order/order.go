package order

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderNotApprovable is returned when a customer tries to approve an
	// order whose current status is outside the approval allow-list. This is
	// a business rule checked before the transition guard, so the rejection
	// message is distinct from a graph violation.
	ErrOrderNotApprovable = errors.New("order cannot be approved in current status")
)

// approvableStatuses is the fixed allow-list of statuses from which a
// customer may approve an estimate.
var approvableStatuses = []Status{StatusEstimateSent, StatusAwaitingCustomerApproval}

// Order is the aggregate root for one customer purchase. It owns the current
// status, consults TransitionGuard on guarded change requests, stages audit
// events for every status mutation, and manages the tracking-token lifecycle
// used by outward-facing signed links.
//
// Invariants:
//   - Every status mutation stages exactly one event with matching old/new status
//   - No-op changes (target equals current) succeed without staging an event
//   - Guarded changes respect the catalog's transition graph
//   - Forced changes bypass the graph but still require a known target code
//     and still stage an audit event, tagged distinctly from guarded changes
//   - Orders are never hard-deleted; cancellation is a terminal status
//
// The version field is the optimistic-lock counter: the repository refuses a
// write when the stored version no longer matches, surfacing
// errs.ErrConcurrentModification to the caller.
type Order struct {
	id            kernel.UUID
	number        string
	customerEmail string
	status        Status
	subtotal      kernel.Money
	discount      kernel.Money
	tax           kernel.Money
	shipping      kernel.Money
	total         kernel.Money
	placedAt      *time.Time
	trackingToken *string
	version       int
	createdBy     string
	updatedBy     string

	guard         TransitionGuard
	pendingEvents []*Event
	isConstructed bool
}

// NewOrder creates a new order in draft status.
//
// Parameters:
//   - id: unique identifier (must be a constructed UUID)
//   - number: human-readable order number (required)
//   - createdBy: actor entering the order
//
// Monetary fields start at zero; the surrounding order-total computation
// maintains them. The order carries version 1 until first persisted update.
func NewOrder(id kernel.UUID, number string, createdBy string) (*Order, error) {
	o := &Order{
		status:        StatusDraft,
		version:       1,
		guard:         NewTransitionGuard(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
	); err != nil {
		return nil, err
	}

	o.createdBy = createdBy
	o.updatedBy = createdBy
	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
//
// The stored status is accepted even when it has no catalog entry: rows
// predating the catalog keep their legacy codes until migrated, and the
// system degrades gracefully around them.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerEmail string,
	status Status,
	subtotal, discount, tax, shipping, total kernel.Money,
	placedAt *time.Time,
	trackingToken *string,
	version int,
	createdBy, updatedBy string,
) (*Order, error) {
	o := &Order{
		customerEmail: customerEmail,
		status:        status,
		subtotal:      subtotal,
		discount:      discount,
		tax:           tax,
		shipping:      shipping,
		total:         total,
		placedAt:      placedAt,
		trackingToken: trackingToken,
		createdBy:     createdBy,
		updatedBy:     updatedBy,
		guard:         NewTransitionGuard(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerEmail returns the notification recipient, empty when the order has
// no customer contact on file.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// SetCustomerEmail updates the notification recipient.
func (o *Order) SetCustomerEmail(email string) {
	o.customerEmail = email
}

// Status returns the current status code.
func (o *Order) Status() Status {
	return o.status
}

// Subtotal returns the line-item subtotal.
func (o *Order) Subtotal() kernel.Money { return o.subtotal }

// Discount returns the discount amount.
func (o *Order) Discount() kernel.Money { return o.discount }

// Tax returns the tax amount.
func (o *Order) Tax() kernel.Money { return o.tax }

// Shipping returns the shipping amount.
func (o *Order) Shipping() kernel.Money { return o.shipping }

// Total returns the total amount.
func (o *Order) Total() kernel.Money { return o.total }

// PlacedAt returns the confirmation timestamp, nil until the order is confirmed.
func (o *Order) PlacedAt() *time.Time {
	return o.placedAt
}

// TrackingToken returns the current tracking token, nil until first issued.
func (o *Order) TrackingToken() *string {
	return o.trackingToken
}

// Version returns the optimistic-lock counter as read from storage.
func (o *Order) Version() int {
	return o.version
}

// CreatedBy returns the actor that entered the order.
func (o *Order) CreatedBy() string { return o.createdBy }

// UpdatedBy returns the actor of the last mutation.
func (o *Order) UpdatedBy() string { return o.updatedBy }

// SetAmounts updates the monetary fields. The caller (the surrounding
// order-total computation) is responsible for total consistency.
func (o *Order) SetAmounts(subtotal, discount, tax, shipping, total kernel.Money) {
	o.subtotal = subtotal
	o.discount = discount
	o.tax = tax
	o.shipping = shipping
	o.total = total
}

// PendingEvents returns events staged by mutations since the order was
// loaded. The unit of work persists them atomically with the order row.
func (o *Order) PendingEvents() []*Event {
	return o.pendingEvents
}

// ClearPendingEvents drops staged events after they have been persisted.
func (o *Order) ClearPendingEvents() {
	o.pendingEvents = nil
}

// RequestStatusChange performs a guarded status transition.
//
// The target must be a known catalog code (ErrUnknownStatus otherwise) and
// adjacent to the current status in the transition graph
// (ErrTransitionNotAllowed otherwise). When target equals the current status
// the call is a no-op success: it returns (nil, nil) and stages no event.
//
// On success the status is mutated and exactly one status_changed event is
// staged with the given visibility. note becomes the event message when set.
func (o *Order) RequestStatusChange(target Status, actor string, note string, visibility Visibility) (*Event, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !visibility.IsValid() {
		return nil, errs.NewValueIsInvalidErrorWithCause("visibility",
			fmt.Errorf("%q is not a valid visibility", string(visibility)))
	}
	if target == o.status {
		return nil, nil
	}
	if err := o.guard.Check(o.status, target); err != nil {
		return nil, err
	}

	old := o.status
	o.applyStatus(target, actor)

	message := note
	if message == "" {
		message = fmt.Sprintf("Order moved from %s to %s", old.Label(), target.Label())
	}

	event, err := NewEvent(
		o.id,
		EventTypeStatusChanged,
		"Status changed",
		message,
		&old, &target,
		nil,
		visibility,
		actor,
	)
	if err != nil {
		return nil, err
	}

	o.pendingEvents = append(o.pendingEvents, event)
	return event, nil
}

// ForceSetStatus performs a privileged status change that bypasses the
// transition guard's adjacency check. It is the named escape hatch for
// migration and administrative overrides; it must never be reached from
// customer-facing paths.
//
// The target must still be a known catalog code, and the change still stages
// an audit event, tagged status_migrated so forced changes remain
// distinguishable from guarded ones. Targets with no outgoing edges
// (terminal statuses) are permitted. Setting the current status again is a
// no-op success with no event.
func (o *Order) ForceSetStatus(target Status, actor string, reason string) (*Event, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !target.IsKnown() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, string(target))
	}
	if target == o.status {
		return nil, nil
	}

	old := o.status
	o.applyStatus(target, actor)

	event, err := NewEvent(
		o.id,
		EventTypeStatusMigrated,
		"Status migrated",
		fmt.Sprintf("Status set from %s to %s (%s)", old.Label(), target.Label(), reason),
		&old, &target,
		map[string]any{
			"reason":      reason,
			"migrated_at": time.Now().UTC().Format(time.RFC3339),
		},
		VisibilityAdmin,
		actor,
	)
	if err != nil {
		return nil, err
	}

	o.pendingEvents = append(o.pendingEvents, event)
	return event, nil
}

// ApproveByCustomer records a customer's approval of the estimate.
//
// The approval allow-list (estimate_sent, awaiting_customer_approval) is a
// business rule checked before the transition guard; orders in any other
// status fail with ErrOrderNotApprovable even when the graph would permit
// the transition.
func (o *Order) ApproveByCustomer(actor string) (*Event, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	approvable := false
	for _, s := range approvableStatuses {
		if o.status == s {
			approvable = true
			break
		}
	}
	if !approvable {
		return nil, fmt.Errorf("%w: %q", ErrOrderNotApprovable, string(o.status))
	}

	return o.RequestStatusChange(StatusCustomerApproved, actor, "Estimate approved by customer", VisibilityCustomer)
}

// IssueTrackingToken returns the current tracking token, generating one if
// the order has none. Idempotent: repeated calls return the same token until
// RotateTrackingToken is used.
func (o *Order) IssueTrackingToken() string {
	if o.trackingToken != nil {
		return *o.trackingToken
	}
	token := uuid.NewString()
	o.trackingToken = &token
	return token
}

// RotateTrackingToken always replaces the tracking token with a fresh one.
// Signed links embed the token value, so links issued against the old token
// fail verification after rotation.
func (o *Order) RotateTrackingToken() string {
	token := uuid.NewString()
	o.trackingToken = &token
	return token
}

// applyStatus mutates the status and bookkeeping shared by the guarded and
// forced paths. placedAt is set once, on first confirmation.
func (o *Order) applyStatus(target Status, actor string) {
	o.status = target
	o.updatedBy = actor
	if target == StatusCustomerApproved && o.placedAt == nil {
		now := time.Now().UTC()
		o.placedAt = &now
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	o.version = version
	return nil
}
