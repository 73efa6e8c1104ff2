package commands

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/metrics"
)

// ApproveEstimateCommandHandler handles customer estimate approvals.
//
// The approval allow-list (order is in estimate_sent or
// awaiting_customer_approval) is enforced by the aggregate before the
// transition guard runs; callers can distinguish order.ErrOrderNotApprovable
// ("wrong current status") from guard rejections.
type ApproveEstimateCommandHandler struct {
	uowFactory UoWFactory
}

// NewApproveEstimateCommandHandler creates a handler for estimate approvals.
func NewApproveEstimateCommandHandler(uowFactory UoWFactory) ApproveEstimateCommandHandler {
	return ApproveEstimateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the approval: moves the order to customer_approved,
// records the customer-visible audit event, and queues the confirmation
// notification, all in one transaction.
func (h ApproveEstimateCommandHandler) Handle(
	ctx context.Context,
	cmd ApproveEstimateCommand,
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

	event, err := aggregate.ApproveByCustomer(cmd.Actor())
	if err != nil {
		metrics.StatusTransitionsRejectedTotal.Inc()
		return nil, err
	}

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
