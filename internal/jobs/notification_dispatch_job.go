package jobs

import (
	"context"
	"log/slog"

	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// dispatchBatchSize caps how many outbox rows one tick processes.
const dispatchBatchSize = 50

// NotificationDispatchJob drains the notification outbox. Runs every ten
// seconds, sends each pending notification through the Notifier and records
// the outcome. Rows enqueued during a status-change transaction are picked up
// here after commit.
type NotificationDispatchJob struct {
	outbox   ports.NotificationOutbox
	notifier ports.Notifier
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewNotificationDispatchJob creates a job that delivers queued notifications.
func NewNotificationDispatchJob(
	outbox ports.NotificationOutbox,
	notifier ports.Notifier,
	logger *slog.Logger,
) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		outbox:   outbox,
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "notification_dispatch_job"),
	}
}

// Start begins the dispatch job, polling every ten seconds.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		j.dispatchPending(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started (running every 10s)")
	return nil
}

// Stop stops the dispatch job.
func (j *NotificationDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}

func (j *NotificationDispatchJob) dispatchPending(ctx context.Context) {
	batch, err := j.outbox.PendingBatch(ctx, dispatchBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load pending notifications", "error", err)
		return
	}

	for _, notification := range batch {
		if sendErr := j.notifier.SendStatusChanged(ctx, notification); sendErr != nil {
			j.logger.ErrorContext(ctx, "Failed to send notification",
				"notification_id", notification.ID.String(),
				"order_number", notification.OrderNumber,
				"error", sendErr)
			metrics.NotificationsSentTotal.WithLabelValues(metrics.ResultFailed).Inc()

			if markErr := j.outbox.MarkFailed(ctx, notification.ID, sendErr.Error()); markErr != nil {
				j.logger.ErrorContext(ctx, "Failed to mark notification as failed",
					"notification_id", notification.ID.String(), "error", markErr)
			}
			continue
		}

		metrics.NotificationsSentTotal.WithLabelValues(metrics.ResultSent).Inc()
		if markErr := j.outbox.MarkSent(ctx, notification.ID); markErr != nil {
			j.logger.ErrorContext(ctx, "Failed to mark notification as sent",
				"notification_id", notification.ID.String(), "error", markErr)
		}
	}
}
