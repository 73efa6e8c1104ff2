package commands

import (
	"context"

	"orderdesk/internal/core/domain/model/order"
)

// RotateTrackingTokenCommandHandler replaces an order's tracking token and
// records the rotation in the audit trail. Old signed links embed the
// replaced token value and stop verifying.
type RotateTrackingTokenCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRotateTrackingTokenCommandHandler creates a handler for token rotations.
func NewRotateTrackingTokenCommandHandler(uowFactory OrderUoWFactory) RotateTrackingTokenCommandHandler {
	return RotateTrackingTokenCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle rotates the token and appends an admin-visible audit event in the
// same transaction as the order update.
func (h RotateTrackingTokenCommandHandler) Handle(ctx context.Context, cmd RotateTrackingTokenCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	aggregate.RotateTrackingToken()

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := order.NewEvent(
		aggregate.ID(),
		"tracking_token_rotated",
		"Tracking link reset",
		"Previously shared tracking links are no longer valid",
		nil, nil,
		nil,
		order.VisibilityAdmin,
		cmd.Actor(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderEventRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
