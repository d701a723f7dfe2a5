package middleware

import (
	"errors"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/ibtws/pkg/client"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

// MetricsConfig configures the Prometheus hook.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "ibtws").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for send and decode duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus hook.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "ibtws",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	sentTotal       *prometheus.CounterVec
	sentBytes       prometheus.Counter
	sendDuration    *prometheus.HistogramVec
	sendErrors      *prometheus.CounterVec
	receivedTotal   *prometheus.CounterVec
	decodeDuration  *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	connected       prometheus.Gauge
	serverVersion   prometheus.Gauge
	connectsTotal   prometheus.Counter
	disconnectTotal prometheus.Counter
}

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		sentTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "messages_sent_total",
			Help:        "Outbound messages by message name and status",
			ConstLabels: config.ConstLabels,
		}, []string{"message", "status"}),

		sentBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sent_bytes_total",
			Help:        "Bytes handed to the transport",
			ConstLabels: config.ConstLabels,
		}),

		sendDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "send_duration_seconds",
			Help:        "Time spent writing one outbound message",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"message"}),

		sendErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "send_errors_total",
			Help:        "Failed writes by message name and error type",
			ConstLabels: config.ConstLabels,
		}, []string{"message", "error_type"}),

		receivedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "messages_received_total",
			Help:        "Inbound messages by message name and status",
			ConstLabels: config.ConstLabels,
		}, []string{"message", "status"}),

		decodeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "decode_duration_seconds",
			Help:        "Time from reading a message id to delivering its events",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"message"}),

		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Errors delivered to the application by code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		connected: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "connected",
			Help:        "1 while a session is established",
			ConstLabels: config.ConstLabels,
		}),

		serverVersion: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "server_version",
			Help:        "Server version negotiated by the last handshake",
			ConstLabels: config.ConstLabels,
		}),

		connectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "connects_total",
			Help:        "Successful handshakes",
			ConstLabels: config.ConstLabels,
		}),

		disconnectTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "disconnects_total",
			Help:        "Sessions ended for any reason",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// MetricsHook collects Prometheus metrics for a client. Metrics are
// registered on construction, so create one hook per registry.
type MetricsHook struct {
	m *metrics
}

// Prometheus creates a hook that collects:
//   - ibtws_messages_sent_total: outbound messages by name and status
//   - ibtws_sent_bytes_total: bytes written
//   - ibtws_send_duration_seconds: write latency by message
//   - ibtws_send_errors_total: failed writes by message and error type
//   - ibtws_messages_received_total: inbound messages by name and status
//   - ibtws_decode_duration_seconds: decode latency by message
//   - ibtws_errors_total: errors seen by the sink, when wrapped with Sink
//   - ibtws_connected, ibtws_server_version: session gauges
//   - ibtws_connects_total, ibtws_disconnects_total
//
// Example:
//
//	m := middleware.Prometheus(middleware.WithNamespace("desk"))
//	c := client.New(m.Sink(app), client.Options{Hooks: []client.Hook{m}})
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) *MetricsHook {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &MetricsHook{m: initMetrics(config)}
}

func (h *MetricsHook) Send(info client.SendInfo, next func() error) error {
	name := info.Tag.String()
	start := time.Now()
	err := next()
	h.m.sendDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		h.m.sentTotal.WithLabelValues(name, "error").Inc()
		h.m.sendErrors.WithLabelValues(name, categorizeError(err)).Inc()
		return err
	}
	h.m.sentTotal.WithLabelValues(name, "success").Inc()
	h.m.sentBytes.Add(float64(info.Bytes))
	return nil
}

func (h *MetricsHook) Received(tag protocol.InTag, elapsed time.Duration, err error) {
	name := tag.String()
	status := "success"
	if err != nil {
		status = "error"
	}
	h.m.receivedTotal.WithLabelValues(name, status).Inc()
	h.m.decodeDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

func (h *MetricsHook) Connected(hello protocol.ServerHello) {
	h.m.connectsTotal.Inc()
	h.m.connected.Set(1)
	h.m.serverVersion.Set(float64(hello.Version))
}

func (h *MetricsHook) Disconnected() {
	h.m.disconnectTotal.Inc()
	h.m.connected.Set(0)
}

// Sink wraps next so that every error it receives is counted by code.
// Transport errors are counted under "connection".
func (h *MetricsHook) Sink(next protocol.Sink) protocol.Sink {
	return &countingSink{Sink: next, m: h.m}
}

type countingSink struct {
	protocol.Sink
	m *metrics
}

func (s *countingSink) Error(ev protocol.ErrorMessage) {
	s.m.errorsTotal.WithLabelValues(strconv.Itoa(ev.Code)).Inc()
	s.Sink.Error(ev)
}

func (s *countingSink) ConnectionError(err error) {
	s.m.errorsTotal.WithLabelValues("connection").Inc()
	s.Sink.ConnectionError(err)
}

// categorizeError keeps the error_type label to a fixed set.
func categorizeError(err error) string {
	var ne net.Error
	switch {
	case errors.Is(err, os.ErrDeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return "timeout"
	case errors.Is(err, net.ErrClosed), errors.Is(err, os.ErrClosed):
		return "closed"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "broken pipe"), strings.Contains(msg, "connection reset"):
		return "reset"
	case strings.Contains(msg, "timeout"):
		return "timeout"
	default:
		return "internal"
	}
}
