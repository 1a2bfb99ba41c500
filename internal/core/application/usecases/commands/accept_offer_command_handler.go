package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// AcceptOfferCommandHandler moves a job from Offered to Assigned when the
// offered cleaner accepts it.
type AcceptOfferCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptance.
func NewAcceptOfferCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the acceptance. The aggregate enforces actor and state
// preconditions; a stale concurrent write surfaces as a version conflict
// from the repository.
func (h *AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
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

	if err = aggregate.Accept(cmd.CleanerID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, events.NewJobAssigned(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(), time.Now().UTC()))

	return nil
}
