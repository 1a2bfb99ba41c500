package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// ResolveExtraTimeCommandHandler records the client's extra time decision
// and tells the cleaner the outcome.
type ResolveExtraTimeCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewResolveExtraTimeCommandHandler creates a handler for extra time decisions.
func NewResolveExtraTimeCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) ResolveExtraTimeCommandHandler {
	return ResolveExtraTimeCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the decision.
func (h *ResolveExtraTimeCommandHandler) Handle(ctx context.Context, cmd ResolveExtraTimeCommand) error {
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

	if err = aggregate.ResolveExtraTime(cmd.ClientID(), cmd.Approved(), cmd.ApprovedMinutes()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.Approved() {
		_ = h.publisher.Publish(ctx, events.NewExtraTimeApproved(
			aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
			cmd.ApprovedMinutes(), time.Now().UTC()))
	} else {
		_ = h.publisher.Publish(ctx, events.NewExtraTimeDenied(
			aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(), time.Now().UTC()))
	}

	return nil
}
