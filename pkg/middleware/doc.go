// Package middleware provides client.Hook implementations for
// observability.
//
// # OpenTelemetry
//
// OpenTelemetry opens a span per session and a child span per outbound
// message. Inbound messages are recorded as span events, decode failures
// as recorded errors.
//
//	hooks := []client.Hook{
//	    middleware.OpenTelemetry(middleware.WithTracerName("desk")),
//	}
//
// # Prometheus
//
// Prometheus counts traffic by message name and tracks the session
// gauges. Wrap the application sink with MetricsHook.Sink to also count
// error codes:
//
//	m := middleware.Prometheus()
//	c := client.New(m.Sink(app), client.Options{Hooks: []client.Hook{m}})
//
// Expose the metrics with promhttp.Handler(); the bridge command mounts
// it at /metrics.
//
// # Logging
//
// Logging emits one slog record per message, at Debug unless changed with
// WithLevel.
package middleware
