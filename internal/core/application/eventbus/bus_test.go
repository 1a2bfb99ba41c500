package eventbus_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cleaning/internal/core/application/eventbus"
	"cleaning/internal/core/domain/events"
	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *eventbus.Bus {
	t.Helper()
	collector := metrics.NewCollector(prometheus.NewRegistry())
	bus, err := eventbus.NewBus(collector, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return bus
}

func newTestEvent() events.JobAssigned {
	return events.NewJobAssigned(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now())
}

func TestNewBus(t *testing.T) {
	t.Run("requires a collector", func(t *testing.T) {
		_, err := eventbus.NewBus(nil, slog.New(slog.DiscardHandler))
		require.Error(t, err)
	})

	t.Run("requires a logger", func(t *testing.T) {
		_, err := eventbus.NewBus(metrics.NewCollector(prometheus.NewRegistry()), nil)
		require.Error(t, err)
	})
}

func TestBusSubscribe(t *testing.T) {
	bus := newTestBus(t)

	t.Run("requires a kind", func(t *testing.T) {
		err := bus.Subscribe("", func(context.Context, events.DomainEvent) error { return nil })
		require.Error(t, err)
	})

	t.Run("requires a handler", func(t *testing.T) {
		err := bus.Subscribe(events.KindJobAssigned, nil)
		require.Error(t, err)
	})
}

func TestBusPublish(t *testing.T) {
	t.Run("invokes every handler for the kind", func(t *testing.T) {
		bus := newTestBus(t)
		var calls atomic.Int32

		for i := 0; i < 3; i++ {
			require.NoError(t, bus.Subscribe(events.KindJobAssigned,
				func(context.Context, events.DomainEvent) error {
					calls.Add(1)
					return nil
				}))
		}

		err := bus.Publish(context.Background(), newTestEvent())

		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("no subscribers is a no-op", func(t *testing.T) {
		bus := newTestBus(t)
		require.NoError(t, bus.Publish(context.Background(), newTestEvent()))
	})

	t.Run("does not invoke handlers for other kinds", func(t *testing.T) {
		bus := newTestBus(t)
		var called atomic.Bool
		require.NoError(t, bus.Subscribe(events.KindJobCancelled,
			func(context.Context, events.DomainEvent) error {
				called.Store(true)
				return nil
			}))

		require.NoError(t, bus.Publish(context.Background(), newTestEvent()))
		assert.False(t, called.Load())
	})

	t.Run("one failing handler does not stop the others", func(t *testing.T) {
		bus := newTestBus(t)
		handlerErr := errors.New("smtp unreachable")
		var succeeded atomic.Int32

		require.NoError(t, bus.Subscribe(events.KindJobAssigned,
			func(context.Context, events.DomainEvent) error { return handlerErr }))
		for i := 0; i < 2; i++ {
			require.NoError(t, bus.Subscribe(events.KindJobAssigned,
				func(context.Context, events.DomainEvent) error {
					succeeded.Add(1)
					return nil
				}))
		}

		err := bus.Publish(context.Background(), newTestEvent())

		require.ErrorIs(t, err, handlerErr)
		assert.Equal(t, int32(2), succeeded.Load())
	})

	t.Run("recovers handler panics", func(t *testing.T) {
		bus := newTestBus(t)
		var succeeded atomic.Bool

		require.NoError(t, bus.Subscribe(events.KindJobAssigned,
			func(context.Context, events.DomainEvent) error { panic("boom") }))
		require.NoError(t, bus.Subscribe(events.KindJobAssigned,
			func(context.Context, events.DomainEvent) error {
				succeeded.Store(true)
				return nil
			}))

		err := bus.Publish(context.Background(), newTestEvent())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "panic")
		assert.True(t, succeeded.Load())
	})

	t.Run("handlers run concurrently", func(t *testing.T) {
		bus := newTestBus(t)

		// Both handlers block until the other has started; sequential
		// dispatch would deadlock and trip the timeout.
		var barrier sync.WaitGroup
		barrier.Add(2)
		done := make(chan struct{})

		handler := func(context.Context, events.DomainEvent) error {
			barrier.Done()
			barrier.Wait()
			return nil
		}
		require.NoError(t, bus.Subscribe(events.KindJobAssigned, handler))
		require.NoError(t, bus.Subscribe(events.KindJobAssigned, handler))

		go func() {
			defer close(done)
			_ = bus.Publish(context.Background(), newTestEvent())
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handlers did not run concurrently")
		}
	})

	t.Run("rejects nil event", func(t *testing.T) {
		bus := newTestBus(t)
		require.Error(t, bus.Publish(context.Background(), nil))
	})
}
