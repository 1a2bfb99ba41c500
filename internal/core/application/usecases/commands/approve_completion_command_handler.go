package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
)

// ApproveCompletionCommandHandler moves a job from AwaitingClientReview to
// the terminal CompletedApproved state.
type ApproveCompletionCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewApproveCompletionCommandHandler creates a handler for client approvals.
func NewApproveCompletionCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) ApproveCompletionCommandHandler {
	return ApproveCompletionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the approval.
func (h *ApproveCompletionCommandHandler) Handle(ctx context.Context, cmd ApproveCompletionCommand) error {
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

	if err = aggregate.ApproveCompletion(cmd.ClientID()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, events.NewClientApproved(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(), time.Now().UTC()))

	return nil
}
