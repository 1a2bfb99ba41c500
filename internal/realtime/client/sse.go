package client

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// SSEStrategy connects over server-sent events, the first fallback when
// WebSocket is unavailable.
type SSEStrategy struct {
	url    string
	client *http.Client
}

// NewSSEStrategy creates an SSE strategy for the given http:// or https://
// URL. The stream request carries no timeout; its lifetime is bound to the
// connection's Close.
func NewSSEStrategy(streamURL string) *SSEStrategy {
	return &SSEStrategy{
		url:    streamURL,
		client: &http.Client{},
	}
}

// Name identifies the transport.
func (s *SSEStrategy) Name() string { return "sse" }

// Connect opens the event stream and starts parsing data lines.
func (s *SSEStrategy) Connect(ctx context.Context, userEmail string) (Connection, error) {
	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	endpoint := s.url
	if strings.Contains(endpoint, "?") {
		endpoint += "&userEmail=" + url.QueryEscape(userEmail)
	} else {
		endpoint += "?userEmail=" + url.QueryEscape(userEmail)
	}

	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("sse stream returned status %d", resp.StatusCode)
	}

	c := &sseConnection{
		cancel: cancel,
		recv:   make(chan []byte, 16),
	}
	go c.readLoop(resp)

	return c, nil
}

type sseConnection struct {
	cancel    context.CancelFunc
	recv      chan []byte
	closeOnce sync.Once
}

func (c *sseConnection) readLoop(resp *http.Response) {
	defer close(c.recv)
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if data, ok := strings.CutPrefix(line, "data: "); ok {
			c.recv <- []byte(data)
		}
	}
}

func (c *sseConnection) Receive() <-chan []byte { return c.recv }

// Send is a no-op: SSE is server-to-client only, and the server keeps the
// stream alive with its own keepalive comments.
func (c *sseConnection) Send(_ []byte) error { return nil }

func (c *sseConnection) Close() error {
	c.closeOnce.Do(c.cancel)
	return nil
}
