package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/ibtws/pkg/client"
	"github.com/vango-dev/ibtws/pkg/protocol"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// recSpan records what the hook does with a span.
type recSpan struct {
	noop.Span
	name   string
	parent *recSpan
	attrs  []attribute.KeyValue
	events []string
	errs   []error
	status codes.Code
	ended  bool
}

func (s *recSpan) End(...trace.SpanEndOption)                    { s.ended = true }
func (s *recSpan) AddEvent(name string, _ ...trace.EventOption)  { s.events = append(s.events, name) }
func (s *recSpan) RecordError(err error, _ ...trace.EventOption) { s.errs = append(s.errs, err) }
func (s *recSpan) SetStatus(code codes.Code, _ string)           { s.status = code }
func (s *recSpan) IsRecording() bool                             { return true }

func (s *recSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

type recTracer struct {
	noop.Tracer
	mu    sync.Mutex
	spans []*recSpan
}

func (tr *recTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recSpan{name: name, attrs: cfg.Attributes()}
	if p, ok := trace.SpanFromContext(ctx).(*recSpan); ok {
		s.parent = p
	}
	tr.mu.Lock()
	tr.spans = append(tr.spans, s)
	tr.mu.Unlock()
	return trace.ContextWithSpan(ctx, s), s
}

type recProvider struct {
	noop.TracerProvider
	tracer *recTracer
}

func (p recProvider) Tracer(string, ...trace.TracerOption) trace.Tracer { return p.tracer }

func newTracedHook(opts ...OTelOption) (*TraceHook, *recTracer) {
	tr := &recTracer{}
	opts = append([]OTelOption{WithTracerProvider(recProvider{tracer: tr})}, opts...)
	return OpenTelemetry(opts...), tr
}

func TestTraceHookSession(t *testing.T) {
	h, tr := newTracedHook()

	h.Connected(protocol.ServerHello{Version: 70, Time: "20261017 09:30:00 EST"})
	if len(tr.spans) != 1 || tr.spans[0].name != "ibtws.session" {
		t.Fatalf("spans = %d, want one session span", len(tr.spans))
	}
	session := tr.spans[0]
	if v, ok := session.attr("ibtws.server_version"); !ok || v.AsInt64() != 70 {
		t.Errorf("ibtws.server_version = %v, want 70", v.AsInt64())
	}
	if trace.SpanFromContext(h.SessionContext()) != session {
		t.Error("SessionContext() does not carry the session span")
	}

	info := client.SendInfo{Tag: protocol.OutReqMktData, ID: 7, Bytes: 32}
	if err := h.Send(info, func() error { return nil }); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	send := tr.spans[1]
	if send.name != "ibtws.send REQ_MKT_DATA" {
		t.Errorf("send span name = %q", send.name)
	}
	if send.parent != session {
		t.Error("send span is not a child of the session span")
	}
	if v, ok := send.attr("ibtws.request_id"); !ok || v.AsInt64() != 7 {
		t.Errorf("ibtws.request_id = %v, want 7", v.AsInt64())
	}
	if !send.ended || send.status != codes.Ok {
		t.Errorf("send span ended=%v status=%v, want ended Ok", send.ended, send.status)
	}

	h.Received(protocol.InTickPrice, time.Microsecond, nil)
	h.Received(protocol.InOpenOrder, time.Microsecond, errors.New("bad field"))
	if len(session.events) != 1 || session.events[0] != "ibtws.received" {
		t.Errorf("session events = %q, want one ibtws.received", session.events)
	}
	if len(session.errs) != 1 {
		t.Errorf("session errors = %d, want 1", len(session.errs))
	}

	h.Disconnected()
	if !session.ended {
		t.Error("session span not ended on disconnect")
	}
	if trace.SpanFromContext(h.SessionContext()).SpanContext().IsValid() {
		t.Error("SessionContext() still carries a span after disconnect")
	}
}

func TestTraceHookSendError(t *testing.T) {
	h, tr := newTracedHook()
	writeErr := errors.New("broken pipe")

	info := client.SendInfo{Tag: protocol.OutReqIDs, ID: protocol.NoValidID, Bytes: 6}
	if err := h.Send(info, func() error { return writeErr }); !errors.Is(err, writeErr) {
		t.Fatalf("Send() error = %v, want %v", err, writeErr)
	}
	span := tr.spans[0]
	if span.status != codes.Error || len(span.errs) != 1 {
		t.Errorf("status = %v errors = %d, want Error and 1", span.status, len(span.errs))
	}
	if _, ok := span.attr("ibtws.request_id"); ok {
		t.Error("ibtws.request_id set for a request without id")
	}
	if span.parent != nil {
		t.Error("send span has a parent outside a session")
	}
}

func TestTraceHookOptions(t *testing.T) {
	h, tr := newTracedHook(
		WithTraceReceived(false),
		WithSendFilter(func(info client.SendInfo) bool { return info.Tag != protocol.OutReqCurrentTime }),
		WithAttributeExtractor(func(client.SendInfo) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("desk", "fx")}
		}),
	)
	h.Connected(protocol.ServerHello{Version: 63})
	session := tr.spans[0]

	called := false
	h.Send(client.SendInfo{Tag: protocol.OutReqCurrentTime}, func() error { called = true; return nil })
	if !called {
		t.Fatal("filtered send did not call next")
	}
	if len(tr.spans) != 1 {
		t.Errorf("spans = %d, want filtered send untraced", len(tr.spans))
	}

	h.Send(client.SendInfo{Tag: protocol.OutReqPositions}, func() error { return nil })
	if v, ok := tr.spans[1].attr("desk"); !ok || v.AsString() != "fx" {
		t.Errorf("desk attribute = %q, want fx", v.AsString())
	}

	h.Received(protocol.InTickPrice, 0, nil)
	if len(session.events) != 0 {
		t.Errorf("session events = %q, want none with TraceReceived off", session.events)
	}
	h.Received(protocol.InTickPrice, 0, errors.New("bad"))
	if len(session.errs) != 1 {
		t.Error("decode errors must be recorded even with TraceReceived off")
	}
}

func TestOpenTelemetryConfigDefaults(t *testing.T) {
	config := defaultOTelConfig()
	if config.TracerName != "ibtws" {
		t.Errorf("TracerName = %q, want ibtws", config.TracerName)
	}
	if !config.TraceReceived {
		t.Error("TraceReceived should default to true")
	}

	// The global provider is a no-op unless configured.
	h := OpenTelemetry(WithTracerName("test"))
	h.Connected(protocol.ServerHello{Version: 63})
	if err := h.Send(client.SendInfo{Tag: protocol.OutReqIDs}, func() error { return nil }); err != nil {
		t.Errorf("Send() error = %v", err)
	}
	h.Disconnected()
}
