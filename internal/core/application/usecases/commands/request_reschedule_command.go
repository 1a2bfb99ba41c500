package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/guard"
)

// ErrRequestRescheduleCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrRequestRescheduleCommandIsNotConstructed = errors.New(
	"RequestRescheduleCommand must be created via NewRequestRescheduleCommand constructor",
)

// RequestRescheduleCommand represents a participant asking to move the
// visit. It only ever produces an event; the job itself never changes.
type RequestRescheduleCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestRescheduleCommand creates a validated reschedule request command.
func NewRequestRescheduleCommand(jobID, actorID kernel.UUID) (RequestRescheduleCommand, error) {
	cmd := RequestRescheduleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setActorID(actorID),
	); err != nil {
		return RequestRescheduleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestRescheduleCommand) Validate() error {
	return c.guard.Validate(ErrRequestRescheduleCommandIsNotConstructed)
}

// JobID returns the job a reschedule is requested for.
func (c RequestRescheduleCommand) JobID() kernel.UUID { return c.jobID }

// ActorID returns the requesting participant.
func (c RequestRescheduleCommand) ActorID() kernel.UUID { return c.actorID }

func (c *RequestRescheduleCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *RequestRescheduleCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}
