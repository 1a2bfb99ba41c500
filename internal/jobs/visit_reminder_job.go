package jobs

import (
	"context"
	"log/slog"

	"cleaning/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// VisitReminderJob manages the scheduled reminders for upcoming visits.
// Runs every five minutes to notify both parties of Assigned jobs starting
// within the reminder window.
type VisitReminderJob struct {
	handler commands.RemindUpcomingVisitsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewVisitReminderJob creates a new job for reminding about upcoming visits.
// Uses RemindUpcomingVisitsCommandHandler to run the sweep every five minutes.
func NewVisitReminderJob(handler commands.RemindUpcomingVisitsCommandHandler, logger *slog.Logger) *VisitReminderJob {
	return &VisitReminderJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "visit_reminder_job"),
	}
}

// Start begins the visit reminder job to run every five minutes.
func (j *VisitReminderJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()
		cmd, err := commands.NewRemindUpcomingVisitsCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Visit reminder command construction failed", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Visit reminder sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Visit reminder job started (running every five minutes)")
	return nil
}

// Stop stops the visit reminder job.
func (j *VisitReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Visit reminder job stopped")
}
