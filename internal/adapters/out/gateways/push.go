package gateways

import (
	"context"
	"errors"
	"log/slog"
)

// ErrMissingPushEndpoint is returned when the gateway is constructed without
// a provider endpoint outside mock mode.
var ErrMissingPushEndpoint = errors.New("missing push provider endpoint")

// ErrNoDeviceTokens is returned when a push is attempted with no registered
// devices.
var ErrNoDeviceTokens = errors.New("no device tokens to push to")

// HTTPPushGateway delivers mobile push notifications through an HTTP
// provider API.
type HTTPPushGateway struct {
	endpoint string
	apiKey   string
	client   httpDoer
	logger   *slog.Logger
	mockMode bool
}

// NewHTTPPushGateway creates a push gateway. With mockMode set the gateway
// only logs sends and never calls the provider.
func NewHTTPPushGateway(endpoint, apiKey string, mockMode bool, logger *slog.Logger) (*HTTPPushGateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("gateway", "push"))

	if mockMode {
		logger.Info("mock mode enabled")
		return &HTTPPushGateway{logger: logger, mockMode: true}, nil
	}

	if endpoint == "" {
		return nil, ErrMissingPushEndpoint
	}

	return &HTTPPushGateway{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   newHTTPClient(),
		logger:   logger,
	}, nil
}

// Send delivers one push notification to all of the user's devices.
func (g *HTTPPushGateway) Send(ctx context.Context, deviceTokens []string, title string, body string, data map[string]string) error {
	if len(deviceTokens) == 0 {
		return ErrNoDeviceTokens
	}

	if g.mockMode {
		g.logger.Info("mock send", slog.Int("devices", len(deviceTokens)), slog.String("title", title))
		return nil
	}

	payload := map[string]any{
		"tokens": deviceTokens,
		"title":  title,
		"body":   body,
		"data":   data,
	}

	if err := postJSON(ctx, g.client, g.endpoint, g.apiKey, payload); err != nil {
		g.logger.Error("send failed", slog.Int("devices", len(deviceTokens)), slog.Any("error", err))
		return err
	}

	g.logger.Debug("send succeeded", slog.Int("devices", len(deviceTokens)))
	return nil
}
