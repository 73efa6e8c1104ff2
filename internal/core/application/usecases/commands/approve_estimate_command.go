package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var ErrApproveEstimateCommandIsNotConstructed = errors.New(
	"ApproveEstimateCommand must be created via NewApproveEstimateCommand constructor",
)

// ApproveEstimateCommand represents a customer accepting an estimate from
// the order-tracking portal.
type ApproveEstimateCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewApproveEstimateCommand creates an approval command for the given order.
// actor identifies the approving customer.
func NewApproveEstimateCommand(orderID kernel.UUID, actor string) (ApproveEstimateCommand, error) {
	cmd := ApproveEstimateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return ApproveEstimateCommand{}, err
	}
	if actor == "" {
		return ApproveEstimateCommand{}, ErrActorIsRequired
	}

	cmd.orderID = orderID
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveEstimateCommand) Validate() error {
	return c.guard.Validate(ErrApproveEstimateCommandIsNotConstructed)
}

// OrderID returns the order being approved.
func (c ApproveEstimateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the approving customer.
func (c ApproveEstimateCommand) Actor() string {
	return c.actor
}
