package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service's Prometheus registry. A nil *Collector is
// valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	aiRequests     *prometheus.CounterVec
	aiDuration     *prometheus.HistogramVec
	bookings       *prometheus.CounterVec
	payments       *prometheus.CounterVec
	statusChanges  *prometheus.CounterVec
	notifyFailures *prometheus.CounterVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		aiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "luxeplate_ai_requests_total",
				Help: "AI gateway calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		aiDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "luxeplate_ai_request_duration_seconds",
				Help:    "Time spent in AI gateway calls, retries included",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			},
			[]string{"operation"},
		),
		bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "luxeplate_bookings_total",
				Help: "Bookings written by initial status",
			},
			[]string{"status"},
		),
		payments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "luxeplate_payments_total",
				Help: "Payment attempts by processor and outcome",
			},
			[]string{"processor", "outcome"},
		),
		statusChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "luxeplate_booking_status_changes_total",
				Help: "Booking status transitions by target status and actor",
			},
			[]string{"to", "actor"},
		),
		notifyFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "luxeplate_notification_failures_total",
				Help: "Booking notifications that failed per channel",
			},
			[]string{"channel"},
		),
	}

	registry.MustRegister(c.aiRequests, c.aiDuration, c.bookings, c.payments, c.statusChanges, c.notifyFailures)
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return c
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveAI records one gateway operation.
func (c *Collector) ObserveAI(operation string, seconds float64, err error) {
	if c == nil {
		return
	}
	c.aiRequests.WithLabelValues(operation, outcome(err)).Inc()
	c.aiDuration.WithLabelValues(operation).Observe(seconds)
}

func (c *Collector) BookingCreated(status string) {
	if c == nil {
		return
	}
	c.bookings.WithLabelValues(status).Inc()
}

func (c *Collector) PaymentAttempt(processor string, err error) {
	if c == nil {
		return
	}
	c.payments.WithLabelValues(processor, outcome(err)).Inc()
}

func (c *Collector) StatusChanged(to, actor string) {
	if c == nil {
		return
	}
	c.statusChanges.WithLabelValues(to, actor).Inc()
}

func (c *Collector) NotifyFailed(channel string) {
	if c == nil {
		return
	}
	c.notifyFailures.WithLabelValues(channel).Inc()
}

// Registry exposes the underlying registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
