package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/guard"
)

// ErrMarkArrivedCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrMarkArrivedCommandIsNotConstructed = errors.New(
	"MarkArrivedCommand must be created via NewMarkArrivedCommand constructor",
)

// MarkArrivedCommand represents a cleaner checking in at the job address.
// Carries the GPS fix the geofence check runs against.
type MarkArrivedCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	cleanerID kernel.UUID
	fix       kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewMarkArrivedCommand creates a validated check-in command.
func NewMarkArrivedCommand(jobID, cleanerID kernel.UUID, fix kernel.GeoPoint) (MarkArrivedCommand, error) {
	cmd := MarkArrivedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setCleanerID(cleanerID),
		cmd.setFix(fix),
	); err != nil {
		return MarkArrivedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkArrivedCommand) Validate() error {
	return c.guard.Validate(ErrMarkArrivedCommandIsNotConstructed)
}

// JobID returns the job being checked in to.
func (c MarkArrivedCommand) JobID() kernel.UUID { return c.jobID }

// CleanerID returns the arriving cleaner.
func (c MarkArrivedCommand) CleanerID() kernel.UUID { return c.cleanerID }

// Fix returns the reported GPS position.
func (c MarkArrivedCommand) Fix() kernel.GeoPoint { return c.fix }

func (c *MarkArrivedCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *MarkArrivedCommand) setCleanerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.cleanerID = id
	return nil
}

func (c *MarkArrivedCommand) setFix(fix kernel.GeoPoint) error {
	if err := fix.Validate(); err != nil {
		return err
	}
	c.fix = fix
	return nil
}
