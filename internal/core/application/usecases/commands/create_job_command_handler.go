package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
	"cleaning/internal/core/domain/model/job"
)

// CreateJobCommandHandler handles the business logic for job booking.
// Creates the job in Offered state and publishes JobOffered so the cleaner
// hears about the offer.
type CreateJobCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewCreateJobCommandHandler creates a handler for job booking operations.
func NewCreateJobCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the job booking command. The job is persisted first; the
// JobOffered event goes out only after the transaction commits.
func (h *CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := job.NewJob(
		cmd.JobID(), cmd.ClientID(), cmd.CleanerID(),
		cmd.Address(), cmd.Location(), cmd.ScheduledAt(),
		cmd.ContractedDurationMinutes(), cmd.HourlyRateCredits(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.JobRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Post-commit publication; the bus logs handler failures.
	_ = h.publisher.Publish(ctx, events.NewJobOffered(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
		aggregate.Address(), aggregate.ScheduledAt(), time.Now().UTC()))

	return nil
}
