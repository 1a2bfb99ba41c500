package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/guard"
)

// ErrMarkEnRouteCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrMarkEnRouteCommandIsNotConstructed = errors.New(
	"MarkEnRouteCommand must be created via NewMarkEnRouteCommand constructor",
)

// MarkEnRouteCommand represents a cleaner starting to travel to the job.
type MarkEnRouteCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	cleanerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkEnRouteCommand creates a validated en-route command.
func NewMarkEnRouteCommand(jobID, cleanerID kernel.UUID) (MarkEnRouteCommand, error) {
	cmd := MarkEnRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setCleanerID(cleanerID),
	); err != nil {
		return MarkEnRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkEnRouteCommand) Validate() error {
	return c.guard.Validate(ErrMarkEnRouteCommandIsNotConstructed)
}

// JobID returns the job being travelled to.
func (c MarkEnRouteCommand) JobID() kernel.UUID { return c.jobID }

// CleanerID returns the travelling cleaner.
func (c MarkEnRouteCommand) CleanerID() kernel.UUID { return c.cleanerID }

func (c *MarkEnRouteCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *MarkEnRouteCommand) setCleanerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.cleanerID = id
	return nil
}
