// Package jobs provides scheduled background tasks, implemented with
// github.com/robfig/cron/v3.
//
// NotificationDispatchJob polls the notification outbox every ten seconds
// and delivers queued status-change emails. Sending is decoupled from the
// status-change transaction: the command handler only enqueues, this job
// does the actual SMTP work and records sent/failed outcomes.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(outbox, notifier, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
