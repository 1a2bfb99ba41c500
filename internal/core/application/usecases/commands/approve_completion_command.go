package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/guard"
)

// ErrApproveCompletionCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrApproveCompletionCommandIsNotConstructed = errors.New(
	"ApproveCompletionCommand must be created via NewApproveCompletionCommand constructor",
)

// ApproveCompletionCommand represents the client approving completed work.
type ApproveCompletionCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveCompletionCommand creates a validated approval command.
func NewApproveCompletionCommand(jobID, clientID kernel.UUID) (ApproveCompletionCommand, error) {
	cmd := ApproveCompletionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setClientID(clientID),
	); err != nil {
		return ApproveCompletionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveCompletionCommand) Validate() error {
	return c.guard.Validate(ErrApproveCompletionCommandIsNotConstructed)
}

// JobID returns the job being approved.
func (c ApproveCompletionCommand) JobID() kernel.UUID { return c.jobID }

// ClientID returns the approving client.
func (c ApproveCompletionCommand) ClientID() kernel.UUID { return c.clientID }

func (c *ApproveCompletionCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *ApproveCompletionCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.clientID = id
	return nil
}
