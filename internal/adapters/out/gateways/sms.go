package gateways

import (
	"context"
	"errors"
	"log/slog"

	"cleaning/internal/core/domain/model/kernel"
)

// ErrMissingSMSEndpoint is returned when the gateway is constructed without
// a provider endpoint outside mock mode.
var ErrMissingSMSEndpoint = errors.New("missing sms provider endpoint")

// HTTPSMSGateway delivers plain-text SMS through an HTTP provider API.
type HTTPSMSGateway struct {
	endpoint string
	apiKey   string
	sender   string
	client   httpDoer
	logger   *slog.Logger
	mockMode bool
}

// NewHTTPSMSGateway creates an SMS gateway. With mockMode set the gateway
// only logs sends and never calls the provider.
func NewHTTPSMSGateway(endpoint, apiKey, sender string, mockMode bool, logger *slog.Logger) (*HTTPSMSGateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("gateway", "sms"))

	if mockMode {
		logger.Info("mock mode enabled")
		return &HTTPSMSGateway{logger: logger, mockMode: true}, nil
	}

	if endpoint == "" {
		return nil, ErrMissingSMSEndpoint
	}

	return &HTTPSMSGateway{
		endpoint: endpoint,
		apiKey:   apiKey,
		sender:   sender,
		client:   newHTTPClient(),
		logger:   logger,
	}, nil
}

// Send delivers one SMS. The number must already be a valid E.164 value:
// callers validate before reaching the provider boundary, and the gateway
// re-checks so a provider call can never happen with a malformed number.
func (g *HTTPSMSGateway) Send(ctx context.Context, to kernel.PhoneNumber, text string) error {
	if err := to.Validate(); err != nil {
		return err
	}

	if g.mockMode {
		g.logger.Info("mock send", slog.String("to", to.String()))
		return nil
	}

	payload := map[string]string{
		"from": g.sender,
		"to":   to.String(),
		"text": text,
	}

	if err := postJSON(ctx, g.client, g.endpoint, g.apiKey, payload); err != nil {
		g.logger.Error("send failed", slog.String("to", to.String()), slog.Any("error", err))
		return err
	}

	g.logger.Debug("send succeeded", slog.String("to", to.String()))
	return nil
}
