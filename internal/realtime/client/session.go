package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"cleaning/internal/pkg/backoff"
	"cleaning/internal/pkg/errs"
	"cleaning/internal/realtime"
)

// Status describes the session's connection state.
type Status string

const (
	// StatusConnecting means the session is walking the strategy cascade.
	StatusConnecting Status = "connecting"

	// StatusConnected means a transport is established.
	StatusConnected Status = "connected"

	// StatusDisconnected means the session stopped, either by Disconnect
	// or after exhausting its reconnect attempts.
	StatusDisconnected Status = "disconnected"

	// StatusError means the last connect round failed and a retry is
	// scheduled.
	StatusError Status = "error"
)

// Defaults for session tuning knobs.
const (
	DefaultConnectTimeout       = 5 * time.Second
	DefaultMaxReconnectAttempts = 5
	defaultBackoffInitial       = time.Second
	defaultBackoffMax           = 30 * time.Second
)

// Config tunes a Session. UserEmail and at least one strategy are required;
// everything else has a default.
type Config struct {
	UserEmail            string
	Strategies           []Strategy
	ConnectTimeout       time.Duration
	HeartbeatInterval    time.Duration
	ReconnectBackoff     backoff.Strategy
	MaxReconnectAttempts int
	Logger               *slog.Logger
}

// Session maintains one live notification stream. It tries its strategies
// in order with a per-strategy connect timeout, keeps the winning transport
// alive with heartbeats, and reconnects with backoff when it drops. After
// MaxReconnectAttempts consecutive failed rounds it gives up and reports
// StatusDisconnected; a later Connect starts over with a fresh attempt
// budget.
type Session struct {
	userEmail            string
	strategies           []Strategy
	connectTimeout       time.Duration
	heartbeatInterval    time.Duration
	reconnectBackoff     backoff.Strategy
	maxReconnectAttempts int
	logger               *slog.Logger

	mu             sync.Mutex
	status         Status
	subscribers    map[int]func(realtime.NotificationPayload)
	statusWatchers map[int]func(Status)
	nextID         int
	started        bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession creates a session from the config, applying defaults.
func NewSession(cfg Config) (*Session, error) {
	if cfg.UserEmail == "" {
		return nil, errs.NewValueIsRequiredError("userEmail")
	}
	if len(cfg.Strategies) == 0 {
		return nil, errs.NewValueIsRequiredError("strategies")
	}

	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = realtime.HeartbeatInterval
	}
	if cfg.ReconnectBackoff == nil {
		cfg.ReconnectBackoff = backoff.NewLinear(defaultBackoffInitial, defaultBackoffMax)
	}
	if cfg.MaxReconnectAttempts <= 0 {
		cfg.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Session{
		userEmail:            cfg.UserEmail,
		strategies:           cfg.Strategies,
		connectTimeout:       cfg.ConnectTimeout,
		heartbeatInterval:    cfg.HeartbeatInterval,
		reconnectBackoff:     cfg.ReconnectBackoff,
		maxReconnectAttempts: cfg.MaxReconnectAttempts,
		logger:               cfg.Logger.With(slog.String("component", "realtime-session")),
		status:               StatusDisconnected,
		subscribers:          make(map[int]func(realtime.NotificationPayload)),
		statusWatchers:       make(map[int]func(Status)),
	}, nil
}

// Connect starts the session loop. Calling Connect on a session that is
// already running is a no-op. After Disconnect, or after the reconnect
// budget is exhausted, Connect starts a fresh loop with the attempt counter
// reset.
func (s *Session) Connect() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go s.run(ctx, done)
}

// Disconnect stops the session and waits for the loop to exit. It is
// idempotent: repeat calls, or calls on a session that never connected,
// return immediately.
func (s *Session) Disconnect() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	<-done
}

// Status reports the current connection state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Subscribe registers a callback for incoming notifications and returns its
// unsubscribe func.
func (s *Session) Subscribe(cb func(realtime.NotificationPayload)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = cb

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// OnStatusChange registers a callback for status transitions and returns
// its unsubscribe func.
func (s *Session) OnStatusChange(cb func(Status)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.statusWatchers[id] = cb

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.statusWatchers, id)
	}
}

func (s *Session) run(ctx context.Context, done chan struct{}) {
	// Clear started before publishing the final status so anyone who sees
	// StatusDisconnected can Connect again right away.
	defer func() {
		s.mu.Lock()
		s.started = false
		s.mu.Unlock()
		s.setStatus(StatusDisconnected)
		close(done)
	}()

	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}

		s.setStatus(StatusConnecting)
		conn, name := s.connectAny(ctx)
		if conn != nil {
			attempt = 0
			s.logger.Info("connected", slog.String("transport", name))
			s.setStatus(StatusConnected)
			s.serve(ctx, conn)
			_ = conn.Close()

			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("connection dropped", slog.String("transport", name))
		}

		attempt++
		if attempt > s.maxReconnectAttempts {
			s.logger.Warn("reconnect attempts exhausted", slog.Int("attempts", s.maxReconnectAttempts))
			return
		}

		s.setStatus(StatusError)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.reconnectBackoff.Delay(attempt)):
		}
	}
}

// connectAny walks the cascade in order, giving each strategy the connect
// timeout. A strategy that answers after its window was abandoned gets its
// late connection closed.
func (s *Session) connectAny(ctx context.Context) (Connection, string) {
	type result struct {
		conn Connection
		err  error
	}

	for _, strategy := range s.strategies {
		if ctx.Err() != nil {
			return nil, ""
		}

		ch := make(chan result, 1)
		go func() {
			conn, err := strategy.Connect(ctx, s.userEmail)
			ch <- result{conn: conn, err: err}
		}()

		select {
		case r := <-ch:
			if r.err == nil {
				return r.conn, strategy.Name()
			}
			s.logger.Debug("strategy failed",
				slog.String("transport", strategy.Name()), slog.Any("error", r.err))
		case <-time.After(s.connectTimeout):
			s.logger.Debug("strategy timed out", slog.String("transport", strategy.Name()))
			go func() {
				if r := <-ch; r.conn != nil {
					_ = r.conn.Close()
				}
			}()
		case <-ctx.Done():
			return nil, ""
		}
	}

	return nil, ""
}

// serve pumps one established connection: forwards notification frames to
// subscribers and sends a heartbeat ping on the interval. Returns when the
// connection drops or the session stops.
func (s *Session) serve(ctx context.Context, conn Connection) {
	heartbeat := time.NewTicker(s.heartbeatInterval)
	defer heartbeat.Stop()

	ping, _ := json.Marshal(realtime.Frame{Type: realtime.FramePing})

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if err := conn.Send(ping); err != nil {
				return
			}
		case data, open := <-conn.Receive():
			if !open {
				return
			}
			s.dispatch(data)
		}
	}
}

func (s *Session) dispatch(data []byte) {
	var frame realtime.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		s.logger.Warn("invalid frame", slog.Any("error", err))
		return
	}

	if frame.Type != realtime.FrameNotification || frame.Payload == nil {
		return
	}

	s.mu.Lock()
	subscribers := make([]func(realtime.NotificationPayload), 0, len(s.subscribers))
	for _, cb := range s.subscribers {
		subscribers = append(subscribers, cb)
	}
	s.mu.Unlock()

	for _, cb := range subscribers {
		cb(*frame.Payload)
	}
}

func (s *Session) setStatus(status Status) {
	s.mu.Lock()
	if s.status == status {
		s.mu.Unlock()
		return
	}
	s.status = status
	watchers := make([]func(Status), 0, len(s.statusWatchers))
	for _, cb := range s.statusWatchers {
		watchers = append(watchers, cb)
	}
	s.mu.Unlock()

	for _, cb := range watchers {
		cb(status)
	}
}
