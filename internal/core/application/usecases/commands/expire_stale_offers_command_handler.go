package commands

import (
	"context"
	"errors"
	"time"

	"cleaning/internal/core/domain/events"
	"cleaning/internal/core/domain/model/job"
)

// offerExpiryReason is recorded on jobs cancelled by the expiry sweep.
const offerExpiryReason = "offer expired before acceptance"

// ExpireStaleOffersCommandHandler cancels Offered jobs nobody accepted
// before the expiry window ahead of their visit time. Each expiry publishes
// a system JobCancelled so the cleaner's offer disappears and the client
// learns the booking fell through and can rebook.
type ExpireStaleOffersCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
	window     time.Duration
}

// NewExpireStaleOffersCommandHandler creates the sweep handler. window is
// how close to the visit time an unaccepted offer may get before expiring.
func NewExpireStaleOffersCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher, window time.Duration) ExpireStaleOffersCommandHandler {
	return ExpireStaleOffersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		window:     window,
	}
}

// Handle runs one sweep. Jobs are expired independently: one failed
// cancellation does not stop the rest of the batch.
func (h *ExpireStaleOffersCommandHandler) Handle(ctx context.Context, cmd ExpireStaleOffersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	cutoff := now.Add(h.window)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()
	stale, err := repo.GetOfferedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	var failures []error
	var expired []*job.Job
	for _, aggregate := range stale {
		// The aggregate records the cancellation against the booking client.
		if err := aggregate.Cancel(aggregate.ClientID(), now, offerExpiryReason); err != nil {
			failures = append(failures, err)
			continue
		}
		if err := repo.Update(ctx, aggregate); err != nil {
			failures = append(failures, err)
			continue
		}
		expired = append(expired, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range expired {
		_ = h.publisher.Publish(ctx, events.NewSystemJobCancelled(
			aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
			offerExpiryReason, now))
	}

	return errors.Join(failures...)
}
