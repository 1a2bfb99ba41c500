package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/guard"
)

// ErrResolveDisputeCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrResolveDisputeCommandIsNotConstructed = errors.New(
	"ResolveDisputeCommand must be created via NewResolveDisputeCommand constructor",
)

// ResolveDisputeCommand represents an operator closing a dispute in the
// cleaner's favour or escalating it for manual review.
type ResolveDisputeCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	actorID  kernel.UUID
	escalate bool

	guard guard.ConstructorGuard
}

// NewResolveDisputeCommand creates a validated dispute resolution command.
func NewResolveDisputeCommand(jobID, actorID kernel.UUID, escalate bool) (ResolveDisputeCommand, error) {
	cmd := ResolveDisputeCommand{
		escalate: escalate,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setActorID(actorID),
	); err != nil {
		return ResolveDisputeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveDisputeCommand) Validate() error {
	return c.guard.Validate(ErrResolveDisputeCommandIsNotConstructed)
}

// JobID returns the disputed job.
func (c ResolveDisputeCommand) JobID() kernel.UUID { return c.jobID }

// ActorID returns the resolving operator.
func (c ResolveDisputeCommand) ActorID() kernel.UUID { return c.actorID }

// Escalate reports whether the dispute goes to manual review.
func (c ResolveDisputeCommand) Escalate() bool { return c.escalate }

func (c *ResolveDisputeCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *ResolveDisputeCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}
