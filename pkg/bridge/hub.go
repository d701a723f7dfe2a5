package bridge

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event is one frame sent to subscribers.
type Event struct {
	Seq  uint64    `json:"seq"`
	Type string    `json:"type"`
	Time time.Time `json:"time"`
	Data any       `json:"data,omitempty"`
}

// HubConfig configures a Hub.
type HubConfig struct {
	// Buffer is the per-subscriber queue length.
	// Default: 256.
	Buffer int

	// Logger for subscriber lifecycle.
	// Default: slog.Default().
	Logger *slog.Logger

	// Registry receives the hub metrics.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Hub fans events out to subscribers.
type Hub struct {
	buffer int
	logger *slog.Logger

	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscriber

	seq atomic.Uint64
	now func() time.Time

	published   prometheus.Counter
	dropped     prometheus.Counter
	subscribers prometheus.Gauge
}

// NewHub creates a hub with no subscribers.
func NewHub(config HubConfig) *Hub {
	if config.Buffer <= 0 {
		config.Buffer = 256
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(config.Registry)

	return &Hub{
		buffer: config.Buffer,
		logger: config.Logger.With("component", "bridge"),
		subs:   make(map[uuid.UUID]*Subscriber),
		now:    time.Now,

		published: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ibtws",
			Subsystem: "bridge",
			Name:      "events_published_total",
			Help:      "Events published to the hub",
		}),

		dropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ibtws",
			Subsystem: "bridge",
			Name:      "subscribers_dropped_total",
			Help:      "Subscribers dropped for falling behind",
		}),

		subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "ibtws",
			Subsystem: "bridge",
			Name:      "subscribers",
			Help:      "Connected subscribers",
		}),
	}
}

// Subscriber is one consumer of the hub.
type Subscriber struct {
	ID uuid.UUID

	events chan Event
	done   chan struct{}
	once   sync.Once

	mu    sync.RWMutex
	types map[string]bool
}

// Events delivers the subscriber's frames. It is closed when the
// subscriber is removed.
func (s *Subscriber) Events() <-chan Event { return s.events }

// Done is closed when the subscriber is removed.
func (s *Subscriber) Done() <-chan struct{} { return s.done }

// SetTypes restricts delivery to the named event types. No types means
// all.
func (s *Subscriber) SetTypes(types []string) {
	var m map[string]bool
	if len(types) > 0 {
		m = make(map[string]bool, len(types))
		for _, t := range types {
			m[t] = true
		}
	}
	s.mu.Lock()
	s.types = m
	s.mu.Unlock()
}

func (s *Subscriber) wants(typ string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types == nil || s.types[typ]
}

// Subscribe registers a new subscriber.
func (h *Hub) Subscribe(types ...string) *Subscriber {
	s := &Subscriber{
		ID:     uuid.New(),
		events: make(chan Event, h.buffer),
		done:   make(chan struct{}),
	}
	s.SetTypes(types)

	h.mu.Lock()
	h.subs[s.ID] = s
	n := len(h.subs)
	h.mu.Unlock()

	h.subscribers.Inc()
	h.logger.Info("subscriber added", "id", s.ID, "subscribers", n)
	return s
}

// Unsubscribe removes s. It is safe to call more than once.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	_, ok := h.subs[s.ID]
	delete(h.subs, s.ID)
	h.mu.Unlock()
	if !ok {
		return
	}
	h.subscribers.Dec()
	s.once.Do(func() {
		close(s.done)
		close(s.events)
	})
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Published returns the sequence number of the last event.
func (h *Hub) Published() uint64 {
	return h.seq.Load()
}

// Publish sends an event to every interested subscriber. A subscriber whose
// queue is full is dropped.
func (h *Hub) Publish(typ string, data any) {
	ev := Event{Seq: h.seq.Add(1), Type: typ, Time: h.now(), Data: data}
	h.published.Inc()

	var slow []*Subscriber
	h.mu.RLock()
	for _, s := range h.subs {
		if !s.wants(typ) {
			continue
		}
		select {
		case s.events <- ev:
		default:
			slow = append(slow, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range slow {
		h.logger.Warn("subscriber too slow, dropping", "id", s.ID, "buffer", h.buffer)
		h.dropped.Inc()
		h.Unsubscribe(s)
	}
}

// Close removes every subscriber.
func (h *Hub) Close() {
	h.mu.RLock()
	subs := make([]*Subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.RUnlock()
	for _, s := range subs {
		h.Unsubscribe(s)
	}
}
