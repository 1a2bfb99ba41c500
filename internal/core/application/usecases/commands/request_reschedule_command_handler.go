package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// RequestRescheduleCommandHandler validates a reschedule request against the
// job (participant, before travel) and publishes RescheduleRequested.
// Nothing is written: the two parties renegotiate the time out of band.
type RequestRescheduleCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewRequestRescheduleCommandHandler creates a handler for reschedule requests.
func NewRequestRescheduleCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) RequestRescheduleCommandHandler {
	return RequestRescheduleCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle validates and publishes the request.
func (h *RequestRescheduleCommandHandler) Handle(ctx context.Context, cmd RequestRescheduleCommand) error {
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

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	if err = aggregate.CanRequestReschedule(cmd.ActorID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, events.NewRescheduleRequested(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
		cmd.ActorID(), time.Now().UTC()))

	return nil
}
