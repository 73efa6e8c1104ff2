package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var ErrRotateTrackingTokenCommandIsNotConstructed = errors.New(
	"RotateTrackingTokenCommand must be created via NewRotateTrackingTokenCommand constructor",
)

// RotateTrackingTokenCommand represents an administrative request to replace
// an order's tracking token, invalidating all previously issued signed links.
type RotateTrackingTokenCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewRotateTrackingTokenCommand creates a rotation command for the given order.
func NewRotateTrackingTokenCommand(orderID kernel.UUID, actor string) (RotateTrackingTokenCommand, error) {
	cmd := RotateTrackingTokenCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return RotateTrackingTokenCommand{}, err
	}
	if actor == "" {
		return RotateTrackingTokenCommand{}, ErrActorIsRequired
	}

	cmd.orderID = orderID
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RotateTrackingTokenCommand) Validate() error {
	return c.guard.Validate(ErrRotateTrackingTokenCommandIsNotConstructed)
}

// OrderID returns the order whose token is rotated.
func (c RotateTrackingTokenCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requested the rotation.
func (c RotateTrackingTokenCommand) Actor() string {
	return c.actor
}
