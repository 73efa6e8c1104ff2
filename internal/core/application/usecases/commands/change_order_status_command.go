package commands

import (
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrTargetStatusIsRequired = errors.New("target status is required")
	ErrActorIsRequired        = errors.New("actor is required")
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// status through the guarded transition path.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	target     order.Status
	actor      string
	note       string
	visibility order.Visibility

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a guarded status-change command.
// The target is only checked for presence here; whether it is a known code
// and an allowed transition is the aggregate's decision.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	actor string,
	note string,
	visibility order.Visibility,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
		cmd.setVisibility(visibility),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status code.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// Actor returns who requested the change.
func (c ChangeOrderStatusCommand) Actor() string {
	return c.actor
}

// Note returns the optional operator note recorded on the audit event.
func (c ChangeOrderStatusCommand) Note() string {
	return c.note
}

// Visibility returns the audience scope for the audit event.
func (c ChangeOrderStatusCommand) Visibility() order.Visibility {
	return c.visibility
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if target == "" {
		return ErrTargetStatusIsRequired
	}
	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}

func (c *ChangeOrderStatusCommand) setVisibility(visibility order.Visibility) error {
	if !visibility.IsValid() {
		return errs.NewValueIsInvalidErrorWithCause("visibility",
			fmt.Errorf("%q is not a valid visibility", string(visibility)))
	}
	c.visibility = visibility
	return nil
}
