package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/vango-dev/ibtws/pkg/client"
	"github.com/vango-dev/ibtws/pkg/protocol"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "ibtws"

// OTelConfig configures the OpenTelemetry hook.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "ibtws").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: the global provider.
	TracerProvider trace.TracerProvider

	// TraceReceived adds a span event for every inbound message to the
	// session span. Enabled by default; disable for high tick rates.
	TraceReceived bool

	// Filter determines which outbound messages get a span.
	// If nil, all are traced.
	Filter func(info client.SendInfo) bool

	// AttributeExtractor adds custom attributes to send spans.
	AttributeExtractor func(info client.SendInfo) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry hook.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithTraceReceived enables/disables span events for inbound messages.
func WithTraceReceived(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.TraceReceived = include
	}
}

// WithSendFilter sets a filter function for outbound messages.
func WithSendFilter(filter func(info client.SendInfo) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(info client.SendInfo) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:    defaultTracerName,
		TraceReceived: true,
	}
}

// TraceHook traces a client session. Each connection gets a long-lived
// "ibtws.session" span; outbound messages become child spans and inbound
// messages become events on the session span.
type TraceHook struct {
	config OTelConfig
	tracer trace.Tracer

	mu      sync.Mutex
	ctx     context.Context
	session trace.Span
}

// OpenTelemetry creates a tracing hook.
//
// Example:
//
//	c := client.New(sink, client.Options{
//	    Hooks: []client.Hook{middleware.OpenTelemetry(
//	        middleware.WithTracerName("desk"),
//	        middleware.WithTraceReceived(false),
//	    )},
//	})
//
// Without WithTracerProvider the global provider is used; configure it in
// main() with otel.SetTracerProvider before connecting.
func OpenTelemetry(opts ...OTelOption) *TraceHook {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TraceHook{
		config: config,
		tracer: tp.Tracer(config.TracerName),
		ctx:    context.Background(),
	}
}

func (h *TraceHook) Connected(hello protocol.ServerHello) {
	ctx, span := h.tracer.Start(context.Background(), "ibtws.session",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.Int("ibtws.server_version", hello.Version),
			attribute.String("ibtws.server_time", hello.Time),
		),
	)
	h.mu.Lock()
	if h.session != nil {
		h.session.End()
	}
	h.ctx, h.session = ctx, span
	h.mu.Unlock()
}

func (h *TraceHook) Disconnected() {
	h.mu.Lock()
	span := h.session
	h.ctx, h.session = context.Background(), nil
	h.mu.Unlock()
	if span != nil {
		span.End()
	}
}

func (h *TraceHook) Send(info client.SendInfo, next func() error) error {
	if h.config.Filter != nil && !h.config.Filter(info) {
		return next()
	}

	attrs := []attribute.KeyValue{
		attribute.String("ibtws.message", info.Tag.String()),
		attribute.Int("ibtws.bytes", info.Bytes),
	}
	if info.ID != protocol.NoValidID {
		attrs = append(attrs, attribute.Int("ibtws.request_id", info.ID))
	}
	if h.config.AttributeExtractor != nil {
		attrs = append(attrs, h.config.AttributeExtractor(info)...)
	}

	_, span := h.tracer.Start(h.parent(), "ibtws.send "+info.Tag.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	err := next()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return err
}

func (h *TraceHook) Received(tag protocol.InTag, elapsed time.Duration, err error) {
	if !h.config.TraceReceived && err == nil {
		return
	}
	h.mu.Lock()
	span := h.session
	h.mu.Unlock()
	if span == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ibtws.message", tag.String()),
		attribute.Int64("ibtws.decode_us", elapsed.Microseconds()),
	}
	if err != nil {
		span.RecordError(err, trace.WithAttributes(attrs...))
		return
	}
	span.AddEvent("ibtws.received", trace.WithAttributes(attrs...))
}

func (h *TraceHook) parent() context.Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ctx
}

// SessionContext returns a context carrying the current session span, for
// work the application wants traced under the session.
func (h *TraceHook) SessionContext() context.Context {
	return h.parent()
}
