package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// CancelJobCommandHandler cancels a job from any non-terminal state except
// UnderReview. The published JobCancelled event is urgent: the counterpart
// hears about it over SMS and push regardless of preferences.
type CancelJobCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewCancelJobCommandHandler creates a handler for cancellations.
func NewCancelJobCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) CancelJobCommandHandler {
	return CancelJobCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation.
func (h *CancelJobCommandHandler) Handle(ctx context.Context, cmd CancelJobCommand) error {
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

	if err = aggregate.Cancel(cmd.ActorID(), time.Now().UTC(), cmd.Reason()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, events.NewJobCancelled(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
		cmd.ActorID(), cmd.Reason(), time.Now().UTC()))

	return nil
}
