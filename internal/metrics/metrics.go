// Package metrics collects and exposes Prometheus metrics for the job
// lifecycle subsystem: event throughput, notification dispatch outcomes,
// and live connection counts. Scraped through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric of the service. One instance is
// created at composition time and registered on the registry the /metrics
// handler serves.
type Collector struct {
	eventsPublished      *prometheus.CounterVec
	eventHandlerFailures *prometheus.CounterVec

	notificationsCreated *prometheus.CounterVec
	dispatches           *prometheus.CounterVec

	liveConnections prometheus.Gauge
	livePushes      prometheus.Counter
}

// Dispatch outcomes for the notification_dispatch_total counter.
const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeSkipped   = "skipped"
)

// NewCollector creates the collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cleaning_events_published_total",
			Help: "Total number of domain events published, by kind",
		}, []string{"kind"}),
		eventHandlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cleaning_event_handler_failures_total",
			Help: "Total number of event handler failures, by kind",
		}, []string{"kind"}),
		notificationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cleaning_notifications_created_total",
			Help: "Total number of in-app notification records created, by event kind",
		}, []string{"kind"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cleaning_notification_dispatch_total",
			Help: "Total number of channel dispatch attempts, by channel and outcome",
		}, []string{"channel", "outcome"}),
		liveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cleaning_realtime_connections",
			Help: "Current number of live realtime connections",
		}),
		livePushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cleaning_realtime_pushes_total",
			Help: "Total number of notifications pushed to live sessions",
		}),
	}

	reg.MustRegister(
		c.eventsPublished,
		c.eventHandlerFailures,
		c.notificationsCreated,
		c.dispatches,
		c.liveConnections,
		c.livePushes,
	)

	return c
}

// RecordEventPublished counts one published domain event.
func (c *Collector) RecordEventPublished(kind string) {
	c.eventsPublished.WithLabelValues(kind).Inc()
}

// RecordHandlerFailure counts one failed event handler invocation.
func (c *Collector) RecordHandlerFailure(kind string) {
	c.eventHandlerFailures.WithLabelValues(kind).Inc()
}

// RecordNotificationCreated counts one stored in-app notification.
func (c *Collector) RecordNotificationCreated(kind string) {
	c.notificationsCreated.WithLabelValues(kind).Inc()
}

// RecordDispatch counts one channel dispatch attempt with its outcome.
func (c *Collector) RecordDispatch(channel, outcome string) {
	c.dispatches.WithLabelValues(channel, outcome).Inc()
}

// ConnectionOpened increments the live connection gauge.
func (c *Collector) ConnectionOpened() {
	c.liveConnections.Inc()
}

// ConnectionClosed decrements the live connection gauge.
func (c *Collector) ConnectionClosed() {
	c.liveConnections.Dec()
}

// RecordLivePush counts one notification pushed to live sessions.
func (c *Collector) RecordLivePush() {
	c.livePushes.Inc()
}
