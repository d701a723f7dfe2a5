package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the HTTP side of the bridge.
type Config struct {
	// Addr is the listen address.
	Addr string

	// AllowedOrigins lists origins allowed to open /events. "*" allows
	// any origin. Empty enforces same-origin.
	AllowedOrigins []string

	// WriteTimeout bounds each websocket write.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the ping period.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// Gatherer backs /metrics.
	// Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = 30 * time.Second
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Session reports the state of the upstream connection. *client.Client
// satisfies it.
type Session interface {
	IsConnected() bool
	ServerVersion() int
	ConnectionTime() string
}

// Status is the body of GET /status.
type Status struct {
	Connected      bool   `json:"connected"`
	ServerVersion  int    `json:"serverVersion,omitempty"`
	ConnectionTime string `json:"connectionTime,omitempty"`
	Subscribers    int    `json:"subscribers"`
	Published      uint64 `json:"published"`
}

// Server serves a Hub over HTTP.
type Server struct {
	config   Config
	hub      *Hub
	session  Session
	logger   *slog.Logger
	upgrader websocket.Upgrader
	router   chi.Router
}

// NewServer builds the router. session may be nil.
func NewServer(config Config, hub *Hub, session Session) *Server {
	config = config.withDefaults()
	s := &Server{
		config:  config,
		hub:     hub,
		session: session,
		logger:  config.Logger.With("component", "bridge"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin(config.AllowedOrigins),
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/status", s.handleStatus)
	r.Handle("/metrics", promhttp.HandlerFor(config.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/events", s.handleEvents)
	s.router = r
	return s
}

// Handler returns the bridge router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down and drops
// all subscribers.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("bridge listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) status() Status {
	st := Status{Subscribers: s.hub.Len(), Published: s.hub.Published()}
	if s.session != nil && s.session.IsConnected() {
		st.Connected = true
		st.ServerVersion = s.session.ServerVersion()
		st.ConnectionTime = s.session.ConnectionTime()
	}
	return st
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.status()); err != nil {
		s.logger.Error("status encode failed", "error", err)
	}
}

func checkOrigin(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil // gorilla's same-origin check
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(o, "/")] = true
	}
	return func(r *http.Request) bool {
		return set[r.Header.Get("Origin")]
	}
}

func splitTypes(q string) []string {
	if q == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(q, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
