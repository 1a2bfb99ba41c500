package client

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"cleaning/internal/realtime"
)

// DefaultPollInterval is the polling floor of the transport cascade.
const DefaultPollInterval = 30 * time.Second

// PollingStrategy is the transport of last resort: a fixed-interval fetch
// of the notification feed. It only fails to connect when the session
// context is already cancelled, so a cascade ending in polling always
// connects.
type PollingStrategy struct {
	fetch    Fetcher
	interval time.Duration
}

// NewPollingStrategy creates a polling strategy. A non-positive interval
// falls back to DefaultPollInterval.
func NewPollingStrategy(fetch Fetcher, interval time.Duration) *PollingStrategy {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollingStrategy{fetch: fetch, interval: interval}
}

// Name identifies the transport.
func (s *PollingStrategy) Name() string { return "polling" }

// Connect starts the poll loop.
func (s *PollingStrategy) Connect(ctx context.Context, _ string) (Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pollCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c := &pollingConnection{
		cancel: cancel,
		recv:   make(chan []byte, 16),
	}
	go c.loop(pollCtx, s.fetch, s.interval)

	return c, nil
}

type pollingConnection struct {
	cancel    context.CancelFunc
	recv      chan []byte
	closeOnce sync.Once
}

func (c *pollingConnection) loop(ctx context.Context, fetch Fetcher, interval time.Duration) {
	defer close(c.recv)

	since := time.Now().UTC()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		payloads, err := fetch(ctx, since)
		if err != nil {
			// Transient fetch failures do not drop the connection:
			// the next tick retries.
			continue
		}

		for _, payload := range payloads {
			if payload.CreatedAt.After(since) {
				since = payload.CreatedAt
			}

			frame := realtime.Frame{Type: realtime.FrameNotification, Payload: &payload}
			data, marshalErr := json.Marshal(frame)
			if marshalErr != nil {
				continue
			}

			select {
			case c.recv <- data:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (c *pollingConnection) Receive() <-chan []byte { return c.recv }

// Send is a no-op: polling has no client-to-server channel and no
// heartbeat.
func (c *pollingConnection) Send(_ []byte) error { return nil }

func (c *pollingConnection) Close() error {
	c.closeOnce.Do(c.cancel)
	return nil
}
