package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/guard"
)

// ErrCompleteJobCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrCompleteJobCommandIsNotConstructed = errors.New(
	"CompleteJobCommand must be created via NewCompleteJobCommand constructor",
)

// CompleteJobCommand represents a cleaner finishing the visit. Carries the
// GPS fix for the completion geofence check.
type CompleteJobCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	cleanerID kernel.UUID
	fix       kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCompleteJobCommand creates a validated completion command.
func NewCompleteJobCommand(jobID, cleanerID kernel.UUID, fix kernel.GeoPoint) (CompleteJobCommand, error) {
	cmd := CompleteJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setCleanerID(cleanerID),
		cmd.setFix(fix),
	); err != nil {
		return CompleteJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}

// JobID returns the job being completed.
func (c CompleteJobCommand) JobID() kernel.UUID { return c.jobID }

// CleanerID returns the cleaner finishing the visit.
func (c CompleteJobCommand) CleanerID() kernel.UUID { return c.cleanerID }

// Fix returns the reported GPS position.
func (c CompleteJobCommand) Fix() kernel.GeoPoint { return c.fix }

func (c *CompleteJobCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *CompleteJobCommand) setCleanerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.cleanerID = id
	return nil
}

func (c *CompleteJobCommand) setFix(fix kernel.GeoPoint) error {
	if err := fix.Validate(); err != nil {
		return err
	}
	c.fix = fix
	return nil
}
