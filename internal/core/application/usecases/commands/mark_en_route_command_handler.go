package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// MarkEnRouteCommandHandler moves a job from Assigned to EnRoute.
type MarkEnRouteCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewMarkEnRouteCommandHandler creates a handler for en-route transitions.
func NewMarkEnRouteCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) MarkEnRouteCommandHandler {
	return MarkEnRouteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the en-route transition.
func (h *MarkEnRouteCommandHandler) Handle(ctx context.Context, cmd MarkEnRouteCommand) error {
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

	if err = aggregate.MarkEnRoute(cmd.CleanerID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, events.NewCleanerEnRoute(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(), time.Now().UTC()))

	return nil
}
