package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/guard"
)

// ErrStartJobCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrStartJobCommandIsNotConstructed = errors.New(
	"StartJobCommand must be created via NewStartJobCommand constructor",
)

// StartJobCommand represents a cleaner starting the visit. Carries the GPS
// fix for the repeated geofence check.
type StartJobCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	cleanerID kernel.UUID
	fix       kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewStartJobCommand creates a validated visit start command.
func NewStartJobCommand(jobID, cleanerID kernel.UUID, fix kernel.GeoPoint) (StartJobCommand, error) {
	cmd := StartJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setCleanerID(cleanerID),
		cmd.setFix(fix),
	); err != nil {
		return StartJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartJobCommand) Validate() error {
	return c.guard.Validate(ErrStartJobCommandIsNotConstructed)
}

// JobID returns the job being started.
func (c StartJobCommand) JobID() kernel.UUID { return c.jobID }

// CleanerID returns the cleaner starting the visit.
func (c StartJobCommand) CleanerID() kernel.UUID { return c.cleanerID }

// Fix returns the reported GPS position.
func (c StartJobCommand) Fix() kernel.GeoPoint { return c.fix }

func (c *StartJobCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *StartJobCommand) setCleanerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.cleanerID = id
	return nil
}

func (c *StartJobCommand) setFix(fix kernel.GeoPoint) error {
	if err := fix.Validate(); err != nil {
		return err
	}
	c.fix = fix
	return nil
}
