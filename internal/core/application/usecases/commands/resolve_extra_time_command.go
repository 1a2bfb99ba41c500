package commands

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/errs"
	"cleaning/internal/pkg/guard"
)

// ErrResolveExtraTimeCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrResolveExtraTimeCommandIsNotConstructed = errors.New(
	"ResolveExtraTimeCommand must be created via NewResolveExtraTimeCommand constructor",
)

// ResolveExtraTimeCommand represents the client's decision on a pending
// extra time request. On approval, approvedMinutes raises the ceiling and
// may differ from what the cleaner asked for.
type ResolveExtraTimeCommand struct { //nolint:recvcheck //using for validation
	jobID           kernel.UUID
	clientID        kernel.UUID
	approved        bool
	approvedMinutes int

	guard guard.ConstructorGuard
}

// NewResolveExtraTimeCommand creates a validated extra time decision command.
func NewResolveExtraTimeCommand(jobID, clientID kernel.UUID, approved bool, approvedMinutes int) (ResolveExtraTimeCommand, error) {
	cmd := ResolveExtraTimeCommand{
		approved: approved,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setClientID(clientID),
		cmd.setApprovedMinutes(approved, approvedMinutes),
	); err != nil {
		return ResolveExtraTimeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveExtraTimeCommand) Validate() error {
	return c.guard.Validate(ErrResolveExtraTimeCommandIsNotConstructed)
}

// JobID returns the job the decision applies to.
func (c ResolveExtraTimeCommand) JobID() kernel.UUID { return c.jobID }

// ClientID returns the deciding client.
func (c ResolveExtraTimeCommand) ClientID() kernel.UUID { return c.clientID }

// Approved reports whether the client approved the request.
func (c ResolveExtraTimeCommand) Approved() bool { return c.approved }

// ApprovedMinutes returns the granted minutes; zero when denied.
func (c ResolveExtraTimeCommand) ApprovedMinutes() int { return c.approvedMinutes }

func (c *ResolveExtraTimeCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *ResolveExtraTimeCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.clientID = id
	return nil
}

func (c *ResolveExtraTimeCommand) setApprovedMinutes(approved bool, minutes int) error {
	if approved && minutes <= 0 {
		return errs.NewValueIsRequiredError("approvedMinutes")
	}
	if approved {
		c.approvedMinutes = minutes
	}
	return nil
}
