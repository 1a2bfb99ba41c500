package commands

import (
	"errors"
	"time"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/errs"
	"cleaning/internal/pkg/guard"
)

// ErrCreateJobCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand represents a request to book a cleaning job and offer it
// to a specific cleaner. The address, coordinate, scheduled time, and
// pricing inputs are frozen in the resulting job.
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID                     kernel.UUID
	clientID                  kernel.UUID
	cleanerID                 kernel.UUID
	address                   string
	location                  kernel.GeoPoint
	scheduledAt               time.Time
	contractedDurationMinutes int
	hourlyRateCredits         int

	guard guard.ConstructorGuard
}

// NewCreateJobCommand creates a validated job booking command.
func NewCreateJobCommand(
	jobID kernel.UUID,
	clientID kernel.UUID,
	cleanerID kernel.UUID,
	address string,
	location kernel.GeoPoint,
	scheduledAt time.Time,
	contractedDurationMinutes int,
	hourlyRateCredits int,
) (CreateJobCommand, error) {
	cmd := CreateJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setClientID(clientID),
		cmd.setCleanerID(cleanerID),
		cmd.setAddress(address),
		cmd.setLocation(location),
		cmd.setScheduledAt(scheduledAt),
		cmd.setContractedDuration(contractedDurationMinutes),
		cmd.setHourlyRate(hourlyRateCredits),
	); err != nil {
		return CreateJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// JobID returns the identifier for the new job.
func (c CreateJobCommand) JobID() kernel.UUID { return c.jobID }

// ClientID returns the booking client.
func (c CreateJobCommand) ClientID() kernel.UUID { return c.clientID }

// CleanerID returns the cleaner the job is offered to.
func (c CreateJobCommand) CleanerID() kernel.UUID { return c.cleanerID }

// Address returns the booking address.
func (c CreateJobCommand) Address() string { return c.address }

// Location returns the booking coordinate.
func (c CreateJobCommand) Location() kernel.GeoPoint { return c.location }

// ScheduledAt returns the agreed visit time.
func (c CreateJobCommand) ScheduledAt() time.Time { return c.scheduledAt }

// ContractedDurationMinutes returns the booked visit length.
func (c CreateJobCommand) ContractedDurationMinutes() int { return c.contractedDurationMinutes }

// HourlyRateCredits returns the agreed hourly rate.
func (c CreateJobCommand) HourlyRateCredits() int { return c.hourlyRateCredits }

func (c *CreateJobCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *CreateJobCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.clientID = id
	return nil
}

func (c *CreateJobCommand) setCleanerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.cleanerID = id
	return nil
}

func (c *CreateJobCommand) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	c.address = address
	return nil
}

func (c *CreateJobCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *CreateJobCommand) setScheduledAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("scheduledAt")
	}
	c.scheduledAt = at.UTC()
	return nil
}

func (c *CreateJobCommand) setContractedDuration(minutes int) error {
	if minutes <= 0 {
		return errs.NewValueIsRequiredError("contractedDurationMinutes")
	}
	c.contractedDurationMinutes = minutes
	return nil
}

func (c *CreateJobCommand) setHourlyRate(credits int) error {
	if credits <= 0 {
		return errs.NewValueIsRequiredError("hourlyRateCredits")
	}
	c.hourlyRateCredits = credits
	return nil
}
