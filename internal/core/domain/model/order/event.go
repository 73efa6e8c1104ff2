package order

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// Visibility is the audience scope attached to an audit event. It controls
// which timelines may expose the event: customer portals request
// {customer, public}, admin views request all three.
type Visibility string

const (
	VisibilityCustomer Visibility = "customer"
	VisibilityAdmin    Visibility = "admin"
	VisibilityPublic   Visibility = "public"
)

// IsValid reports whether the visibility is one of the declared scopes.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityCustomer, VisibilityAdmin, VisibilityPublic:
		return true
	}
	return false
}

// Event types recorded by the aggregate. event_type is otherwise free-form:
// administrative actions may append events with their own tags.
const (
	EventTypeStatusChanged  = "status_changed"
	EventTypeStatusMigrated = "status_migrated"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through a constructor, e.g. a zero value that bypassed validation.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event is one immutable audit record in an order's history. Every status
// mutation on an order produces exactly one event with matching old/new
// status; events are insert-only and never updated or deleted.
type Event struct {
	id         kernel.UUID
	orderID    kernel.UUID
	eventType  string
	title      string
	message    string
	oldStatus  *Status
	newStatus  *Status
	data       map[string]any
	visibility Visibility
	createdBy  string
	createdAt  time.Time

	isConstructed bool
}

// NewEvent creates an audit event for an order. oldStatus and newStatus are
// only populated for status-change events; free-form action events leave
// them nil. data carries machine-readable context and may be nil.
func NewEvent(
	orderID kernel.UUID,
	eventType string,
	title string,
	message string,
	oldStatus, newStatus *Status,
	data map[string]any,
	visibility Visibility,
	createdBy string,
) (*Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("event type")
	}
	if !visibility.IsValid() {
		return nil, errs.NewValueIsInvalidErrorWithCause("visibility",
			fmt.Errorf("%q is not a valid visibility", string(visibility)))
	}

	return &Event{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		eventType:     eventType,
		title:         title,
		message:       message,
		oldStatus:     oldStatus,
		newStatus:     newStatus,
		data:          data,
		visibility:    visibility,
		createdBy:     createdBy,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an event from persistence without re-running
// creation-time validation. Stored events are trusted as written.
func RestoreEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	eventType string,
	title string,
	message string,
	oldStatus, newStatus *Status,
	data map[string]any,
	visibility Visibility,
	createdBy string,
	createdAt time.Time,
) (*Event, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &Event{
		id:            id,
		orderID:       orderID,
		eventType:     eventType,
		title:         title,
		message:       message,
		oldStatus:     oldStatus,
		newStatus:     newStatus,
		data:          data,
		visibility:    visibility,
		createdBy:     createdBy,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the event was created through a constructor.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the owning order's identifier.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// Type returns the event type tag.
func (e *Event) Type() string {
	return e.eventType
}

// Title returns the short human-readable title.
func (e *Event) Title() string {
	return e.title
}

// Message returns the human-readable detail text.
func (e *Event) Message() string {
	return e.message
}

// OldStatus returns the status before the change, nil for non-status events.
func (e *Event) OldStatus() *Status {
	return e.oldStatus
}

// NewStatus returns the status after the change, nil for non-status events.
func (e *Event) NewStatus() *Status {
	return e.newStatus
}

// Data returns the structured machine-readable payload, possibly nil.
func (e *Event) Data() map[string]any {
	return e.data
}

// Visibility returns the audience scope of the event.
func (e *Event) Visibility() Visibility {
	return e.visibility
}

// CreatedBy returns the actor that produced the event, empty for system events.
func (e *Event) CreatedBy() string {
	return e.createdBy
}

// CreatedAt returns the creation timestamp.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}
