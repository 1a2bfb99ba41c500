package notification

import (
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/guard"
)

// ErrPreferenceIsNotConstructed is returned when a Preference instance was
// not created via a constructor.
var ErrPreferenceIsNotConstructed = errors.New(
	"Preference must be created via NewDefaultPreference or RestorePreference constructor")

// Preference holds one user's per-channel notification opt-in flags.
// A user with no stored preference row receives every channel: absence of a
// record means everything enabled, so channels are opt-out.
//
// Preferences gate ordinary notifications only. Urgent events bypass them
// and are always delivered over SMS and push.
type Preference struct {
	userID kernel.UUID

	inApp bool
	email bool
	sms   bool
	push  bool

	guard guard.ConstructorGuard
}

// NewDefaultPreference creates the implicit all-enabled preference used when
// a user has never stored one.
func NewDefaultPreference(userID kernel.UUID) (Preference, error) {
	if err := userID.Validate(); err != nil {
		return Preference{}, err
	}
	return Preference{
		userID: userID,
		inApp:  true,
		email:  true,
		sms:    true,
		push:   true,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// RestorePreference reconstructs a stored preference row.
func RestorePreference(userID kernel.UUID, inApp, email, sms, push bool) (Preference, error) {
	if err := userID.Validate(); err != nil {
		return Preference{}, err
	}
	return Preference{
		userID: userID,
		inApp:  inApp,
		email:  email,
		sms:    sms,
		push:   push,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Preference was created through a constructor.
func (p *Preference) Validate() error {
	if p == nil {
		return ErrPreferenceIsNotConstructed
	}
	return p.guard.Validate(ErrPreferenceIsNotConstructed)
}

// UserID returns the owning user.
func (p Preference) UserID() kernel.UUID { return p.userID }

// Allows reports whether the user opted in to the given channel.
func (p Preference) Allows(channel Channel) bool {
	switch channel {
	case ChannelInApp:
		return p.inApp
	case ChannelEmail:
		return p.email
	case ChannelSMS:
		return p.sms
	case ChannelPush:
		return p.push
	default:
		return false
	}
}

// EnabledChannels returns the channels the user opted in to, in dispatch
// order.
func (p Preference) EnabledChannels() []Channel {
	var enabled []Channel
	for _, channel := range AllChannels() {
		if p.Allows(channel) {
			enabled = append(enabled, channel)
		}
	}
	return enabled
}
