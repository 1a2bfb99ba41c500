// Package jobs provides scheduled background tasks for the cleaning service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic sweeps over the job board.
//
// # Available Jobs
//
// 1. OfferExpiryJob - Runs every minute to cancel offers nobody accepted before their visit time
// 2. VisitReminderJob - Runs every five minutes to remind both parties about visits starting soon
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireHandler, remindHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiry job uses the cron expression "* * * * *" (every minute); the
// reminder job uses "*/5 * * * *" (every five minutes). Both sweeps are
// idempotent, so an occasional overlapping run is harmless.
//
// # Error Handling
//
// Sweep handlers join per-job failures into a single error; the jobs log it
// and carry on. A failed sweep never stops the schedule.
package jobs
