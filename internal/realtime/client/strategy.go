// Package client maintains a live notification session against the server,
// trying transports in order: WebSocket, then SSE, then polling. The
// strategy order is plain data, so callers can reorder or trim it.
package client

import (
	"context"
	"time"

	"cleaning/internal/realtime"
)

// Connection is one established transport. Receive's channel is closed when
// the connection drops; Send carries client frames on transports that
// support them and is a no-op on the others.
type Connection interface {
	Receive() <-chan []byte
	Send(data []byte) error
	Close() error
}

// Strategy knows how to establish one kind of transport.
type Strategy interface {
	Name() string
	Connect(ctx context.Context, userEmail string) (Connection, error)
}

// Fetcher loads notifications created after the given instant. The polling
// strategy drives it on a fixed interval.
type Fetcher func(ctx context.Context, since time.Time) ([]realtime.NotificationPayload, error)
