package notification

import (
	"fmt"

	"cleaning/internal/pkg/errs"
)

// Channel identifies a delivery channel for notifications.
type Channel int

const (
	// ChannelUnknown represents an invalid or undefined channel.
	ChannelUnknown Channel = iota

	// ChannelInApp stores the notification for in-app feeds and pushes it to
	// live sessions.
	ChannelInApp

	// ChannelEmail delivers a templated email.
	ChannelEmail

	// ChannelSMS delivers a plain-text SMS to an E.164 number.
	ChannelSMS

	// ChannelPush delivers a push notification to registered devices.
	ChannelPush
)

func getChannelStrings() map[Channel]string {
	return map[Channel]string{
		ChannelUnknown: "unknown",
		ChannelInApp:   "in_app",
		ChannelEmail:   "email",
		ChannelSMS:     "sms",
		ChannelPush:    "push",
	}
}

// AllChannels returns every deliverable channel in dispatch order.
func AllChannels() []Channel {
	return []Channel{ChannelInApp, ChannelEmail, ChannelSMS, ChannelPush}
}

// Validate checks that the Channel is one of the deliverable channels.
func (c Channel) Validate() error {
	if c < ChannelInApp || c > ChannelPush {
		return errs.NewValueIsInvalidErrorWithCause("channel is invalid",
			fmt.Errorf("%d is not a valid channel", c))
	}
	return nil
}

// String returns the wire name of the channel.
func (c Channel) String() string {
	if str, ok := getChannelStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// ChannelFromString parses a wire channel name.
func ChannelFromString(s string) (Channel, error) {
	for channel, str := range getChannelStrings() {
		if str == s && channel != ChannelUnknown {
			return channel, nil
		}
	}
	return ChannelUnknown, errs.NewValueIsInvalidErrorWithCause("channel is invalid",
		fmt.Errorf("%q is not a valid channel", s))
}
