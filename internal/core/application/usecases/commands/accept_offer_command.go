package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/guard"
)

// ErrAcceptOfferCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand represents a cleaner accepting an offered job.
type AcceptOfferCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	cleanerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOfferCommand creates a validated offer acceptance command.
func NewAcceptOfferCommand(jobID, cleanerID kernel.UUID) (AcceptOfferCommand, error) {
	cmd := AcceptOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setCleanerID(cleanerID),
	); err != nil {
		return AcceptOfferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

// JobID returns the job being accepted.
func (c AcceptOfferCommand) JobID() kernel.UUID { return c.jobID }

// CleanerID returns the accepting cleaner.
func (c AcceptOfferCommand) CleanerID() kernel.UUID { return c.cleanerID }

func (c *AcceptOfferCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *AcceptOfferCommand) setCleanerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.cleanerID = id
	return nil
}
