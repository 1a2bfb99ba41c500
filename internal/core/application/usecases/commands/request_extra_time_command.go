package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/errs"
	"cleaning/internal/pkg/guard"
)

// ErrRequestExtraTimeCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrRequestExtraTimeCommandIsNotConstructed = errors.New(
	"RequestExtraTimeCommand must be created via NewRequestExtraTimeCommand constructor",
)

// RequestExtraTimeCommand represents a cleaner asking the client for
// additional billable time during the visit.
type RequestExtraTimeCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	cleanerID kernel.UUID
	minutes   int

	guard guard.ConstructorGuard
}

// NewRequestExtraTimeCommand creates a validated extra time request command.
func NewRequestExtraTimeCommand(jobID, cleanerID kernel.UUID, minutes int) (RequestExtraTimeCommand, error) {
	cmd := RequestExtraTimeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setCleanerID(cleanerID),
		cmd.setMinutes(minutes),
	); err != nil {
		return RequestExtraTimeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestExtraTimeCommand) Validate() error {
	return c.guard.Validate(ErrRequestExtraTimeCommandIsNotConstructed)
}

// JobID returns the job extra time is requested on.
func (c RequestExtraTimeCommand) JobID() kernel.UUID { return c.jobID }

// CleanerID returns the requesting cleaner.
func (c RequestExtraTimeCommand) CleanerID() kernel.UUID { return c.cleanerID }

// Minutes returns the requested extra minutes.
func (c RequestExtraTimeCommand) Minutes() int { return c.minutes }

func (c *RequestExtraTimeCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *RequestExtraTimeCommand) setCleanerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.cleanerID = id
	return nil
}

func (c *RequestExtraTimeCommand) setMinutes(minutes int) error {
	if minutes <= 0 {
		return errs.NewValueIsRequiredError("minutes")
	}
	c.minutes = minutes
	return nil
}
