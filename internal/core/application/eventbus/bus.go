package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"cleaning/internal/core/domain/events"
	"cleaning/internal/metrics"
	"cleaning/internal/pkg/errs"
)

// Handler processes one domain event. Handlers run after the producing
// transition has been committed, so a handler error is an observation
// failure, never a veto.
type Handler func(ctx context.Context, event events.DomainEvent) error

// Bus is an in-process typed publish/subscribe dispatcher for domain events.
// Subscriptions are process-lifetime: they are registered during composition
// and never removed.
type Bus struct {
	collector *metrics.Collector
	logger    *slog.Logger

	mu       sync.RWMutex
	handlers map[events.Kind][]Handler
}

// NewBus creates an event bus.
func NewBus(collector *metrics.Collector, logger *slog.Logger) (*Bus, error) {
	if collector == nil {
		return nil, errs.NewValueIsRequiredError("collector")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &Bus{
		collector: collector,
		logger:    logger,
		handlers:  make(map[events.Kind][]Handler),
	}, nil
}

// Subscribe registers a handler for an event kind. Multiple handlers per
// kind are allowed and all of them run on every matching publish.
func (b *Bus) Subscribe(kind events.Kind, handler Handler) error {
	if kind == "" {
		return errs.NewValueIsRequiredError("kind")
	}
	if handler == nil {
		return errs.NewValueIsRequiredError("handler")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], handler)
	return nil
}

// Publish dispatches the event to every handler subscribed to its kind.
// Handlers run concurrently, each in its own goroutine; a panic or error in
// one never prevents the others from completing. Publish waits for all
// handlers, logs each failure, and returns the joined failures so callers
// can record them. An event with no subscribers is a no-op.
func (b *Bus) Publish(ctx context.Context, event events.DomainEvent) error {
	if event == nil {
		return errs.NewValueIsRequiredError("event")
	}

	b.collector.RecordEventPublished(string(event.Kind()))

	b.mu.RLock()
	handlers := b.handlers[event.Kind()]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []error
	)

	record := func(err error) {
		mu.Lock()
		failures = append(failures, err)
		mu.Unlock()
	}

	for _, handler := range handlers {
		wg.Add(1)
		go func(handle Handler) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					record(fmt.Errorf("handler panic for %s: %v", event.Kind(), r))
				}
			}()

			if err := handle(ctx, event); err != nil {
				record(fmt.Errorf("handler failed for %s: %w", event.Kind(), err))
			}
		}(handler)
	}

	wg.Wait()

	for _, failure := range failures {
		b.collector.RecordHandlerFailure(string(event.Kind()))
		b.logger.Error("event handler failure",
			slog.String("kind", string(event.Kind())),
			slog.String("jobId", event.JobID().String()),
			slog.Any("error", failure),
		)
	}

	return errors.Join(failures...)
}
