package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// CompleteJobCommandHandler moves a job from InProgress to
// AwaitingClientReview and records the billing snapshot. The published
// JobCompleted event carries the worked/billable figures the client reviews.
type CompleteJobCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewCompleteJobCommandHandler creates a handler for completion transitions.
func NewCompleteJobCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) CompleteJobCommandHandler {
	return CompleteJobCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the completion.
func (h *CompleteJobCommandHandler) Handle(ctx context.Context, cmd CompleteJobCommand) error {
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

	repo := uow.JobRepository()
	aggregate, err := repo.Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	if err = aggregate.Complete(cmd.CleanerID(), time.Now().UTC(), cmd.Fix()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, events.NewJobCompleted(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
		aggregate.ActualMinutesWorked(), aggregate.BillableMinutes(),
		aggregate.BillableCredits(), time.Now().UTC()))

	return nil
}
