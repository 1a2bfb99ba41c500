package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// MarkArrivedCommandHandler moves a job from EnRoute to Arrived. The
// aggregate rejects fixes outside the geofence with the measured distance.
type MarkArrivedCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewMarkArrivedCommandHandler creates a handler for check-in transitions.
func NewMarkArrivedCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) MarkArrivedCommandHandler {
	return MarkArrivedCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the check-in.
func (h *MarkArrivedCommandHandler) Handle(ctx context.Context, cmd MarkArrivedCommand) error {
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

	if err = aggregate.MarkArrived(cmd.CleanerID(), time.Now().UTC(), cmd.Fix()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, events.NewCleanerArrived(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(), time.Now().UTC()))

	return nil
}
