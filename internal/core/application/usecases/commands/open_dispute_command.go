package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/errs"
	"cleaning/internal/pkg/guard"
)

// ErrOpenDisputeCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrOpenDisputeCommandIsNotConstructed = errors.New(
	"OpenDisputeCommand must be created via NewOpenDisputeCommand constructor",
)

// OpenDisputeCommand represents the client contesting completed work.
type OpenDisputeCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	clientID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewOpenDisputeCommand creates a validated dispute command.
func NewOpenDisputeCommand(jobID, clientID kernel.UUID, reason string) (OpenDisputeCommand, error) {
	cmd := OpenDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setClientID(clientID),
		cmd.setReason(reason),
	); err != nil {
		return OpenDisputeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenDisputeCommand) Validate() error {
	return c.guard.Validate(ErrOpenDisputeCommandIsNotConstructed)
}

// JobID returns the disputed job.
func (c OpenDisputeCommand) JobID() kernel.UUID { return c.jobID }

// ClientID returns the disputing client.
func (c OpenDisputeCommand) ClientID() kernel.UUID { return c.clientID }

// Reason returns the dispute reason.
func (c OpenDisputeCommand) Reason() string { return c.reason }

func (c *OpenDisputeCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *OpenDisputeCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.clientID = id
	return nil
}

func (c *OpenDisputeCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
