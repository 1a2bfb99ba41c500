package commands

import (
	"context"
	"errors"
	"time"

	"cleaning/internal/core/domain/events"
	"cleaning/internal/core/domain/model/job"
)

// RemindUpcomingVisitsCommandHandler publishes VisitReminderDue for assigned
// jobs starting within the reminder window. The reminderSentAt column keeps
// sweeps idempotent: each job is reminded at most once.
type RemindUpcomingVisitsCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
	window     time.Duration
}

// NewRemindUpcomingVisitsCommandHandler creates the sweep handler. window is
// how far ahead of the visit time reminders go out.
func NewRemindUpcomingVisitsCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher, window time.Duration) RemindUpcomingVisitsCommandHandler {
	return RemindUpcomingVisitsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		window:     window,
	}
}

// Handle runs one sweep.
func (h *RemindUpcomingVisitsCommandHandler) Handle(ctx context.Context, cmd RemindUpcomingVisitsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()
	upcoming, err := repo.GetAssignedStartingBetween(ctx, now, now.Add(h.window))
	if err != nil {
		return err
	}

	var failures []error
	var reminded []*job.Job
	for _, aggregate := range upcoming {
		if err := aggregate.MarkReminderSent(now); err != nil {
			failures = append(failures, err)
			continue
		}
		if err := repo.Update(ctx, aggregate); err != nil {
			failures = append(failures, err)
			continue
		}
		reminded = append(reminded, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range reminded {
		_ = h.publisher.Publish(ctx, events.NewVisitReminderDue(
			aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
			aggregate.ScheduledAt(), now))
	}

	return errors.Join(failures...)
}
