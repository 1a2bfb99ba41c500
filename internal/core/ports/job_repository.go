package ports

import (
	"context"
	"time"

	"cleaning/internal/core/domain/model/job"
	"cleaning/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates.
type JobRepository interface {
	// Add persists a new job aggregate to storage.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job aggregate. The write is
	// guarded by the aggregate's version: a stale version returns
	// errs.ErrVersionConflict and persists nothing.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such job exists.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetOfferedBefore retrieves jobs still in the Offered state whose
	// scheduled time is before the cutoff. Used by offer expiry.
	GetOfferedBefore(ctx context.Context, cutoff time.Time) ([]*job.Job, error)

	// GetAssignedStartingBetween retrieves Assigned jobs scheduled inside
	// the window that have not had a reminder sent. Used by visit reminders.
	GetAssignedStartingBetween(ctx context.Context, from, to time.Time) ([]*job.Job, error)
}
