package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cleaning/internal/core/domain/model/notification"
	"cleaning/internal/metrics"
	"cleaning/internal/pkg/errs"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// ErrAuthRequired is returned when a connection's first frame is not a
// valid auth frame.
var ErrAuthRequired = errors.New("first frame must be auth with a user email")

// sessionBufferSize is how many pending pushes one session may lag behind
// before further pushes to it are dropped.
const sessionBufferSize = 16

// session is one live connection's outbound queue. The transport goroutine
// (WebSocket writer or SSE stream) drains it.
type session struct {
	email string
	out   chan []byte
}

// Hub fans notifications out to the live sessions of each user. It is the
// process-local implementation of ports.LivePublisher.
type Hub struct {
	collector *metrics.Collector
	logger    *slog.Logger

	mu       sync.RWMutex
	sessions map[string]map[*session]struct{}
}

// NewHub creates a connection hub.
func NewHub(collector *metrics.Collector, logger *slog.Logger) (*Hub, error) {
	if collector == nil {
		return nil, errs.NewValueIsRequiredError("collector")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Hub{
		collector: collector,
		logger:    logger.With(slog.String("component", "realtime-hub")),
		sessions:  make(map[string]map[*session]struct{}),
	}, nil
}

// PublishToUser pushes a notification to every live session of the user.
// Users with no live sessions are a no-op: they catch up via polling.
func (h *Hub) PublishToUser(_ context.Context, userEmail string, record *notification.Notification) error {
	payload := PayloadFromRecord(record)
	frame := Frame{Type: FrameNotification, Payload: &payload}

	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.sessions[userEmail] {
		select {
		case s.out <- data:
			h.collector.RecordLivePush()
		default:
			h.logger.Warn("session lagging, push dropped", slog.String("user", userEmail))
		}
	}

	return nil
}

// ConnectedSessions reports how many live sessions the user has.
func (h *Hub) ConnectedSessions(userEmail string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userEmail])
}

// ServeWS upgrades the request to a WebSocket connection and serves it
// until the client disconnects. The client's first frame must be auth.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		return fmt.Errorf("websocket upgrade: %w", err)
	}

	go func() {
		defer conn.Close()

		data, readErr := wsutil.ReadClientText(conn)
		if readErr != nil {
			return
		}

		var auth Frame
		if unmarshalErr := json.Unmarshal(data, &auth); unmarshalErr != nil ||
			auth.Type != FrameAuth || auth.UserEmail == "" {
			h.logger.Warn("websocket rejected", slog.Any("error", ErrAuthRequired))
			return
		}

		s := h.register(auth.UserEmail)
		defer h.unregister(s)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for data := range s.out {
				if writeErr := wsutil.WriteServerText(conn, data); writeErr != nil {
					return
				}
			}
		}()

		for {
			data, readErr := wsutil.ReadClientText(conn)
			if readErr != nil {
				return
			}

			var frame Frame
			if unmarshalErr := json.Unmarshal(data, &frame); unmarshalErr != nil {
				continue
			}

			if frame.Type == FramePing {
				pong, _ := json.Marshal(Frame{Type: FramePong})
				select {
				case s.out <- pong:
				case <-done:
					return
				}
			}
		}
	}()

	return nil
}

// ServeSSE streams the user's notification frames as SSE data lines until
// the client disconnects. Keepalive comments go out on the heartbeat
// interval so idle proxies do not cut the stream.
func (h *Hub) ServeSSE(w http.ResponseWriter, r *http.Request, userEmail string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return errors.New("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	s := h.register(userEmail)
	defer h.unregister(s)

	heartbeat := time.NewTicker(HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return nil
			}
			flusher.Flush()
		case data, open := <-s.out:
			if !open {
				return nil
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

func (h *Hub) register(userEmail string) *session {
	s := &session{
		email: userEmail,
		out:   make(chan []byte, sessionBufferSize),
	}

	h.mu.Lock()
	if h.sessions[userEmail] == nil {
		h.sessions[userEmail] = make(map[*session]struct{})
	}
	h.sessions[userEmail][s] = struct{}{}
	h.mu.Unlock()

	h.collector.ConnectionOpened()
	h.logger.Debug("session connected", slog.String("user", userEmail))
	return s
}

func (h *Hub) unregister(s *session) {
	h.mu.Lock()
	sessions, ok := h.sessions[s.email]
	if ok {
		if _, present := sessions[s]; present {
			delete(sessions, s)
			close(s.out)
			if len(sessions) == 0 {
				delete(h.sessions, s.email)
			}
			h.mu.Unlock()

			h.collector.ConnectionClosed()
			h.logger.Debug("session disconnected", slog.String("user", s.email))
			return
		}
	}
	h.mu.Unlock()
}
