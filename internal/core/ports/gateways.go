package ports

import (
	"context"

	"cleaning/internal/core/domain/model/kernel"
)

// EmailGateway delivers templated email through an external provider.
type EmailGateway interface {
	Send(ctx context.Context, to string, subject string, htmlBody string) error
}

// SMSGateway delivers plain-text SMS through an external provider.
// Implementations receive a validated E.164 number; validation failures
// happen before any provider call.
type SMSGateway interface {
	Send(ctx context.Context, to kernel.PhoneNumber, text string) error
}

// PushGateway delivers push notifications to a user's registered devices.
type PushGateway interface {
	Send(ctx context.Context, deviceTokens []string, title string, body string, data map[string]string) error
}
