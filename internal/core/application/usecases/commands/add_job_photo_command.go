package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/job"
	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/errs"
	"cleaning/internal/pkg/guard"
)

// ErrAddJobPhotoCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrAddJobPhotoCommandIsNotConstructed = errors.New(
	"AddJobPhotoCommand must be created via NewAddJobPhotoCommand constructor",
)

// AddJobPhotoCommand represents a cleaner uploading a before or after photo
// during the visit.
type AddJobPhotoCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	cleanerID kernel.UUID
	kind      job.PhotoKind

	guard guard.ConstructorGuard
}

// NewAddJobPhotoCommand creates a validated photo upload command.
// kind is the wire value "before" or "after".
func NewAddJobPhotoCommand(jobID, cleanerID kernel.UUID, kind string) (AddJobPhotoCommand, error) {
	cmd := AddJobPhotoCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setCleanerID(cleanerID),
		cmd.setKind(kind),
	); err != nil {
		return AddJobPhotoCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddJobPhotoCommand) Validate() error {
	return c.guard.Validate(ErrAddJobPhotoCommandIsNotConstructed)
}

// JobID returns the job the photo belongs to.
func (c AddJobPhotoCommand) JobID() kernel.UUID { return c.jobID }

// CleanerID returns the uploading cleaner.
func (c AddJobPhotoCommand) CleanerID() kernel.UUID { return c.cleanerID }

// Kind returns the photo kind.
func (c AddJobPhotoCommand) Kind() job.PhotoKind { return c.kind }

func (c *AddJobPhotoCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *AddJobPhotoCommand) setCleanerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.cleanerID = id
	return nil
}

func (c *AddJobPhotoCommand) setKind(kind string) error {
	switch kind {
	case job.PhotoBefore.String():
		c.kind = job.PhotoBefore
	case job.PhotoAfter.String():
		c.kind = job.PhotoAfter
	default:
		return errs.NewValueIsInvalidError("kind")
	}
	return nil
}
