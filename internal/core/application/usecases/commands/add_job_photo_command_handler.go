package commands

import (
	"context"
	"time"

	"cleaning/internal/core/domain/events"
	"cleaning/internal/core/domain/model/job"
)

// AddJobPhotoCommandHandler counts a before/after photo on an in-progress
// job. Photos never change the lifecycle state.
type AddJobPhotoCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewAddJobPhotoCommandHandler creates a handler for photo uploads.
func NewAddJobPhotoCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) AddJobPhotoCommandHandler {
	return AddJobPhotoCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the photo upload.
func (h *AddJobPhotoCommandHandler) Handle(ctx context.Context, cmd AddJobPhotoCommand) error {
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

	if err = aggregate.AddPhoto(cmd.CleanerID(), cmd.Kind()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	count := aggregate.BeforePhotos()
	if cmd.Kind() == job.PhotoAfter {
		count = aggregate.AfterPhotos()
	}
	_ = h.publisher.Publish(ctx, events.NewPhotoUploaded(
		aggregate.ID(), aggregate.ClientID(), aggregate.CleanerID(),
		cmd.Kind().String(), count, time.Now().UTC()))

	return nil
}
