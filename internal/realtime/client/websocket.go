package client

import (
	"context"
	"encoding/json"
	"net"
	"sync"

	"cleaning/internal/realtime"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// WebSocketStrategy connects over WebSocket, the preferred transport.
type WebSocketStrategy struct {
	url string
}

// NewWebSocketStrategy creates a WebSocket strategy for the given ws:// or
// wss:// URL.
func NewWebSocketStrategy(url string) *WebSocketStrategy {
	return &WebSocketStrategy{url: url}
}

// Name identifies the transport.
func (s *WebSocketStrategy) Name() string { return "websocket" }

// Connect dials the server, sends the auth frame, and starts the read loop.
func (s *WebSocketStrategy) Connect(ctx context.Context, userEmail string) (Connection, error) {
	conn, _, _, err := ws.Dial(ctx, s.url)
	if err != nil {
		return nil, err
	}

	auth, err := json.Marshal(realtime.Frame{Type: realtime.FrameAuth, UserEmail: userEmail})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := wsutil.WriteClientText(conn, auth); err != nil {
		_ = conn.Close()
		return nil, err
	}

	c := &wsConnection{
		conn: conn,
		recv: make(chan []byte, 16),
	}
	go c.readLoop()

	return c, nil
}

type wsConnection struct {
	conn      net.Conn
	recv      chan []byte
	writeMu   sync.Mutex
	closeOnce sync.Once
}

func (c *wsConnection) readLoop() {
	defer close(c.recv)
	for {
		data, err := wsutil.ReadServerText(c.conn)
		if err != nil {
			return
		}
		c.recv <- data
	}
}

func (c *wsConnection) Receive() <-chan []byte { return c.recv }

func (c *wsConnection) Send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return wsutil.WriteClientText(c.conn, data)
}

func (c *wsConnection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})
	return err
}
