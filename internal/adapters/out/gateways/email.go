package gateways

import (
	"context"
	"errors"
	"log/slog"
)

// ErrMissingEmailEndpoint is returned when the gateway is constructed
// without a provider endpoint outside mock mode.
var ErrMissingEmailEndpoint = errors.New("missing email provider endpoint")

// HTTPEmailGateway delivers transactional email through an HTTP provider API.
type HTTPEmailGateway struct {
	endpoint string
	apiKey   string
	from     string
	client   httpDoer
	logger   *slog.Logger
	mockMode bool
}

// NewHTTPEmailGateway creates an email gateway. With mockMode set the
// gateway only logs sends and never calls the provider.
func NewHTTPEmailGateway(endpoint, apiKey, from string, mockMode bool, logger *slog.Logger) (*HTTPEmailGateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("gateway", "email"))

	if mockMode {
		logger.Info("mock mode enabled")
		return &HTTPEmailGateway{logger: logger, mockMode: true}, nil
	}

	if endpoint == "" {
		return nil, ErrMissingEmailEndpoint
	}

	return &HTTPEmailGateway{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		client:   newHTTPClient(),
		logger:   logger,
	}, nil
}

// Send delivers one email.
func (g *HTTPEmailGateway) Send(ctx context.Context, to string, subject string, htmlBody string) error {
	if g.mockMode {
		g.logger.Info("mock send", slog.String("to", to), slog.String("subject", subject))
		return nil
	}

	payload := map[string]string{
		"from":    g.from,
		"to":      to,
		"subject": subject,
		"html":    htmlBody,
	}

	if err := postJSON(ctx, g.client, g.endpoint, g.apiKey, payload); err != nil {
		g.logger.Error("send failed", slog.String("to", to), slog.Any("error", err))
		return err
	}

	g.logger.Debug("send succeeded", slog.String("to", to))
	return nil
}
