package bridge

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

func newTestHub(buffer int) (*Hub, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	h := NewHub(HubConfig{
		Buffer:   buffer,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry: reg,
	})
	return h, reg
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	return m.GetGauge().GetValue()
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func recv(t *testing.T, s *Subscriber) Event {
	t.Helper()
	select {
	case ev, ok := <-s.Events():
		if !ok {
			t.Fatal("events channel closed")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event")
	}
	return Event{}
}

func TestHubPublish(t *testing.T) {
	h, _ := newTestHub(8)
	all := h.Subscribe()
	ticks := h.Subscribe("tickPrice")

	h.TickPrice(protocol.TickPrice{TickerID: 1, Field: 4, Price: 101.5})
	h.Error(protocol.ErrorMessage{ID: 1, Code: 200})

	ev := recv(t, all)
	if ev.Seq != 1 || ev.Type != "tickPrice" {
		t.Errorf("first event = {%d %s}, want {1 tickPrice}", ev.Seq, ev.Type)
	}
	if tp, ok := ev.Data.(protocol.TickPrice); !ok || tp.Price != 101.5 {
		t.Errorf("Data = %#v, want the tick", ev.Data)
	}
	if ev := recv(t, all); ev.Seq != 2 || ev.Type != "error" {
		t.Errorf("second event = {%d %s}, want {2 error}", ev.Seq, ev.Type)
	}

	if ev := recv(t, ticks); ev.Type != "tickPrice" {
		t.Errorf("filtered event = %s, want tickPrice", ev.Type)
	}
	select {
	case ev := <-ticks.Events():
		t.Errorf("filtered subscriber got %s", ev.Type)
	default:
	}

	if got := h.Published(); got != 2 {
		t.Errorf("Published() = %d, want 2", got)
	}
}

func TestHubSetTypes(t *testing.T) {
	h, _ := newTestHub(8)
	s := h.Subscribe("error")
	s.SetTypes(nil)

	h.CurrentTime(protocol.CurrentTime{Time: 1})
	if ev := recv(t, s); ev.Type != "currentTime" {
		t.Errorf("Type = %s, want currentTime after clearing the filter", ev.Type)
	}
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	h, _ := newTestHub(2)
	slow := h.Subscribe()

	for i := 0; i < 3; i++ {
		h.OpenOrderEnd()
	}

	select {
	case <-slow.Done():
	case <-time.After(time.Second):
		t.Fatal("slow subscriber not dropped")
	}
	if n := h.Len(); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
	if got := counterValue(t, h.dropped); got != 1 {
		t.Errorf("subscribers_dropped_total = %v, want 1", got)
	}

	// Buffered events drain before the channel reports closed.
	n := 0
	for range slow.Events() {
		n++
	}
	if n != 2 {
		t.Errorf("drained %d events, want 2", n)
	}
}

func TestHubUnsubscribe(t *testing.T) {
	h, _ := newTestHub(4)
	a := h.Subscribe()
	b := h.Subscribe()
	if got := gaugeValue(t, h.subscribers); got != 2 {
		t.Errorf("subscribers = %v, want 2", got)
	}
	if a.ID == b.ID {
		t.Error("subscriber ids collide")
	}

	h.Unsubscribe(a)
	h.Unsubscribe(a)
	if got := gaugeValue(t, h.subscribers); got != 1 {
		t.Errorf("subscribers = %v, want 1", got)
	}

	h.Close()
	if n := h.Len(); n != 0 {
		t.Errorf("Len() after Close = %d, want 0", n)
	}
	if _, ok := <-b.Events(); ok {
		t.Error("events channel still open after Close")
	}
}

func TestHubConnectionError(t *testing.T) {
	h, _ := newTestHub(4)
	s := h.Subscribe()
	h.ConnectionError(io.ErrUnexpectedEOF)

	ev := recv(t, s)
	data, ok := ev.Data.(map[string]string)
	if !ok || data["error"] != io.ErrUnexpectedEOF.Error() {
		t.Errorf("Data = %#v, want the error text", ev.Data)
	}
}
