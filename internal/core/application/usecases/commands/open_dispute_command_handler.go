package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// OpenDisputeCommandHandler moves a job from AwaitingClientReview to
// Disputed with the client's recorded reason.
type OpenDisputeCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewOpenDisputeCommandHandler creates a handler for dispute openings.
func NewOpenDisputeCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) OpenDisputeCommandHandler {
	return OpenDisputeCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the dispute.
func (h *OpenDisputeCommandHandler) Handle(ctx context.Context, cmd OpenDisputeCommand) error {
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

	if err = aggregate.OpenDispute(cmd.ClientID(), cmd.Reason()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, events.NewDisputeOpened(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
		cmd.Reason(), time.Now().UTC()))

	return nil
}
