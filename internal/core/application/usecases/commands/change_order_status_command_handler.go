package commands

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/metrics"
)

// ChangeOrderStatusCommandHandler handles guarded status transitions.
// The order row, the audit event and the outbox notification are written in
// one transaction: either the full status change happens or none of it does.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for guarded status changes.
func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status-change command.
//
// Returns the appended audit event, or (nil, nil) when the target equals the
// order's current status (a no-op success: nothing written, no notification).
// Guard rejections surface as order.ErrUnknownStatus or
// order.ErrTransitionNotAllowed; lost updates as errs.ErrConcurrentModification.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	event, err := aggregate.RequestStatusChange(cmd.Target(), cmd.Actor(), cmd.Note(), cmd.Visibility())
	if err != nil {
		metrics.StatusTransitionsRejectedTotal.Inc()
		return nil, err
	}
	if event == nil {
		return nil, nil
	}

	// Links in the notification need a token; issuing here is idempotent.
	token := aggregate.IssueTrackingToken()

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.OrderEventRepository().Add(ctx, event); err != nil {
		return nil, err
	}
	aggregate.ClearPendingEvents()

	if recipient := aggregate.CustomerEmail(); recipient != "" {
		notification := &ports.Notification{
			ID:            kernel.NewUUID(),
			OrderID:       aggregate.ID(),
			OrderNumber:   aggregate.Number(),
			Recipient:     recipient,
			OldStatus:     *event.OldStatus(),
			NewStatus:     *event.NewStatus(),
			TrackingToken: token,
			CreatedAt:     time.Now().UTC(),
		}
		if err = uow.NotificationOutbox().Enqueue(ctx, notification); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.StatusTransitionsTotal.Inc()
	return event, nil
}
