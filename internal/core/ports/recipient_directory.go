package ports

import (
	"context"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/core/domain/model/notification"
)

// Recipient is the contact card and channel preference for one user, as the
// notification orchestrator needs it.
type Recipient struct {
	UserID       kernel.UUID
	Name         string
	Email        string
	Phone        kernel.PhoneNumber
	DeviceTokens []string
	Preference   notification.Preference
}

// RecipientDirectory resolves notification recipients.
type RecipientDirectory interface {
	// GetRecipient retrieves the contact card and preference for a user.
	// A user without a stored preference row comes back with the default
	// all-enabled preference. Returns errs.ErrObjectNotFound when the user
	// itself is unknown.
	GetRecipient(ctx context.Context, userID kernel.UUID) (Recipient, error)
}
