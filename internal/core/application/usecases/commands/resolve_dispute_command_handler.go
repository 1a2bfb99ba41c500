package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// ResolveDisputeCommandHandler closes a dispute: CompletedApproved in the
// cleaner's favour, or UnderReview when escalated.
type ResolveDisputeCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewResolveDisputeCommandHandler creates a handler for dispute resolutions.
func NewResolveDisputeCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) ResolveDisputeCommandHandler {
	return ResolveDisputeCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the resolution.
func (h *ResolveDisputeCommandHandler) Handle(ctx context.Context, cmd ResolveDisputeCommand) error {
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

	if err = aggregate.ResolveDispute(cmd.ActorID(), cmd.Escalate()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, events.NewDisputeResolved(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
		cmd.Escalate(), time.Now().UTC()))

	return nil
}
