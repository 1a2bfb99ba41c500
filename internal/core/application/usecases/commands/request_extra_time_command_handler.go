package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// RequestExtraTimeCommandHandler flags an in-progress job with a pending
// extra time request. The published event is urgent so the client can
// decide while the visit is still running.
type RequestExtraTimeCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewRequestExtraTimeCommandHandler creates a handler for extra time requests.
func NewRequestExtraTimeCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) RequestExtraTimeCommandHandler {
	return RequestExtraTimeCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the extra time request.
func (h *RequestExtraTimeCommandHandler) Handle(ctx context.Context, cmd RequestExtraTimeCommand) error {
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

	if err = aggregate.RequestExtraTime(cmd.CleanerID(), cmd.Minutes()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, events.NewExtraTimeRequested(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
		cmd.Minutes(), time.Now().UTC()))

	return nil
}
