package gateway

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/vango-dev/ibtws/pkg/protocol"
)

// TimeLayout is the connection time format sent in the handshake.
const TimeLayout = "20060102 15:04:05 MST"

// Error 200, sent for every contract details request.
const (
	NoSecurityDefinitionCode = 200
	NoSecurityDefinitionText = "No security definition has been found for the request"
)

// ErrUnsupported is returned by ServeConn when the client sends a request
// the gateway cannot parse.
var ErrUnsupported = errors.New("gateway: unsupported request")

// ErrServerClosed is returned by Serve after Close.
var ErrServerClosed = errors.New("gateway: server closed")

// Config configures a Server.
type Config struct {
	// ServerVersion is announced in the handshake.
	// Default: 71.
	ServerVersion int

	// Accounts is the comma-separated MANAGED_ACCTS reply.
	// Default: "DU000001".
	Accounts string

	// FirstOrderID is the first NEXT_VALID_ID handed out per session.
	// Default: 1.
	FirstOrderID int

	// ScannerParameters is the SCANNER_PARAMETERS reply.
	ScannerParameters string

	// FA holds RECEIVE_FA replies keyed by FA data type.
	FA map[int]string

	// Now is the server clock.
	// Default: time.Now.
	Now func() time.Time

	// Logger for session events.
	// Default: slog.Default().
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.ServerVersion <= 0 {
		c.ServerVersion = 71
	}
	if c.Accounts == "" {
		c.Accounts = "DU000001"
	}
	if c.FirstOrderID <= 0 {
		c.FirstOrderID = 1
	}
	if c.ScannerParameters == "" {
		c.ScannerParameters = "<ScanParameterResponse/>"
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Server accepts client sessions.
type Server struct {
	config Config
	logger *slog.Logger

	mu        sync.Mutex
	listeners map[net.Listener]struct{}
	conns     map[net.Conn]struct{}
	closed    bool
	wg        sync.WaitGroup
}

// New creates a server.
func New(config Config) *Server {
	config = config.withDefaults()
	return &Server{
		config:    config,
		logger:    config.Logger.With("component", "gateway"),
		listeners: make(map[net.Listener]struct{}),
		conns:     make(map[net.Conn]struct{}),
	}
}

// ServerVersion returns the announced server version.
func (s *Server) ServerVersion() int {
	return s.config.ServerVersion
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts sessions on ln until ctx is cancelled or Close is called.
// It closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.listeners[ln] = struct{}{}
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()
	s.logger.Info("gateway listening", "addr", ln.Addr().String(), "server_version", s.config.ServerVersion)

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return ErrServerClosed
			}
			return err
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return ErrServerClosed
		}
		s.wg.Add(1)
		s.mu.Unlock()
		go func() {
			defer s.wg.Done()
			if err := s.ServeConn(conn); err != nil {
				s.logger.Warn("session ended", "remote", conn.RemoteAddr().String(), "error", err)
			}
		}()
	}
}

// Close stops all listeners and sessions and waits for them to exit.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for ln := range s.listeners {
		ln.Close()
	}
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}

// ServeConn runs one session over conn and closes it. A client hanging up
// is not an error.
func (s *Server) ServeConn(conn net.Conn) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return ErrServerClosed
	}
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	sess := &session{
		config: s.config,
		logger: s.logger.With("remote", conn.RemoteAddr().String()),
		dec:    protocol.NewDecoder(bufio.NewReader(conn)),
		w:      conn,
		nextID: s.config.FirstOrderID,
	}
	err := sess.run()
	if isHangup(err) {
		sess.logger.Info("client disconnected")
		return nil
	}
	return err
}

func isHangup(err error) bool {
	return err == nil ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed)
}
