package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// StartJobCommandHandler moves a job from Arrived to InProgress and freezes
// the billable ceiling.
type StartJobCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewStartJobCommandHandler creates a handler for visit start transitions.
func NewStartJobCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) StartJobCommandHandler {
	return StartJobCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the visit start.
func (h *StartJobCommandHandler) Handle(ctx context.Context, cmd StartJobCommand) error {
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

	if err = aggregate.Start(cmd.CleanerID(), time.Now().UTC(), cmd.Fix()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, events.NewJobStarted(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
		aggregate.MaxBillableMinutes(), aggregate.MaxBillableCredits(), time.Now().UTC()))

	return nil
}
