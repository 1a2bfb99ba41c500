package commands

import (
	"errors"

	"cleaning/internal/pkg/guard"
)

// ErrRemindUpcomingVisitsCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrRemindUpcomingVisitsCommandIsNotConstructed = errors.New(
	"RemindUpcomingVisitsCommand must be created via NewRemindUpcomingVisitsCommand constructor",
)

// RemindUpcomingVisitsCommand triggers one sweep for assigned visits
// starting soon. Issued by the visit reminder cron job.
type RemindUpcomingVisitsCommand struct {
	guard guard.ConstructorGuard
}

// NewRemindUpcomingVisitsCommand creates the sweep command.
func NewRemindUpcomingVisitsCommand() (RemindUpcomingVisitsCommand, error) {
	return RemindUpcomingVisitsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemindUpcomingVisitsCommand) Validate() error {
	return c.guard.Validate(ErrRemindUpcomingVisitsCommandIsNotConstructed)
}
