package commands

import (
	"errors"

	"cleaning/internal/pkg/guard"
)

// ErrExpireStaleOffersCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrExpireStaleOffersCommandIsNotConstructed = errors.New(
	"ExpireStaleOffersCommand must be created via NewExpireStaleOffersCommand constructor",
)

// ExpireStaleOffersCommand triggers one sweep over unaccepted offers whose
// visit time is about to pass. Issued by the offer expiry cron job.
type ExpireStaleOffersCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireStaleOffersCommand creates the sweep command.
func NewExpireStaleOffersCommand() (ExpireStaleOffersCommand, error) {
	return ExpireStaleOffersCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireStaleOffersCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleOffersCommandIsNotConstructed)
}
