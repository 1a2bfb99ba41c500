package jobs

import (
	"context"
	"log/slog"

	"cleaning/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OfferExpiryJob manages the scheduled expiry of unaccepted offers.
// Runs every minute to cancel Offered jobs whose visit time is about to pass.
type OfferExpiryJob struct {
	handler commands.ExpireStaleOffersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOfferExpiryJob creates a new job for expiring stale offers.
// Uses ExpireStaleOffersCommandHandler to run the sweep every minute.
func NewOfferExpiryJob(handler commands.ExpireStaleOffersCommandHandler, logger *slog.Logger) *OfferExpiryJob {
	return &OfferExpiryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "offer_expiry_job"),
	}
}

// Start begins the offer expiry job to run every minute.
func (j *OfferExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd, err := commands.NewExpireStaleOffersCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Offer expiry command construction failed", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Offer expiry sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer expiry job started (running every minute)")
	return nil
}

// Stop stops the offer expiry job.
func (j *OfferExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Offer expiry job stopped")
}
