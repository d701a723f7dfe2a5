package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	clienterr "github.com/vango-dev/ibtws/internal/errors"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

// Client is a session with TWS or IB Gateway.
type Client struct {
	sink   protocol.Sink
	opts   Options
	logger *slog.Logger

	// mu serializes writes and guards the session fields.
	mu            sync.Mutex
	conn          net.Conn
	serverVersion int
	serverTime    string
	clientID      int
	extraAuth     bool
	done          chan struct{}

	// connected is read by the reader goroutine without mu.
	connected atomic.Bool
}

// New creates a disconnected client delivering inbound events to sink.
func New(sink protocol.Sink, opts Options) *Client {
	if sink == nil {
		sink = protocol.NopSink{}
	}
	opts = opts.withDefaults()
	c := &Client{
		opts:     opts,
		logger:   opts.Logger,
		clientID: -1,
	}
	c.sink = &tap{Sink: sink, c: c}
	return c
}

// tap intercepts the events the session itself reacts to before passing
// them on.
type tap struct {
	protocol.Sink
	c *Client
}

func (t *tap) VerifyCompleted(ev protocol.VerifyCompleted) {
	if ev.Successful {
		t.c.startAPI()
	}
	t.Sink.VerifyCompleted(ev)
}

// Connect dials addr and performs the handshake. Without a deadline on ctx
// the dial and handshake are bounded by Options.ConnectTimeout.
func (c *Client) Connect(ctx context.Context, addr string, clientID int) error {
	if c.connected.Load() {
		return c.fail(clienterr.New(clienterr.AlreadyConnected).WithCause(ErrAlreadyConnected))
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.ConnectTimeout)
		defer cancel()
	}

	conn, err := c.opts.Dial(ctx, "tcp", addr)
	if err != nil {
		c.logger.Error("dial failed", "addr", addr, "error", err)
		return c.fail(clienterr.New(clienterr.ConnectFail).Wrap(err))
	}
	return c.ConnectConn(ctx, conn, clientID)
}

// ConnectConn performs the handshake over an established transport and
// starts the reader. The client owns conn afterwards, also on failure.
func (c *Client) ConnectConn(ctx context.Context, conn net.Conn, clientID int) error {
	c.mu.Lock()
	if c.connected.Load() {
		c.mu.Unlock()
		conn.Close()
		return c.fail(clienterr.New(clienterr.AlreadyConnected).WithCause(ErrAlreadyConnected))
	}

	dec, hello, err := c.handshake(ctx, conn, clientID)
	if err != nil {
		c.mu.Unlock()
		conn.Close()
		if errors.Is(err, protocol.ErrServerTooOld) {
			c.logger.Error("server too old", "server_version", hello.Version, "min", protocol.MinServerVersion)
			return c.fail(clienterr.New(clienterr.UpdateTWS).WithCause(err))
		}
		c.logger.Error("handshake failed", "error", err)
		return c.fail(clienterr.New(clienterr.ConnectFail).Wrap(err))
	}

	done := make(chan struct{})
	c.conn = conn
	c.serverVersion = hello.Version
	c.serverTime = hello.Time
	c.clientID = clientID
	c.extraAuth = c.opts.ExtraAuth
	c.done = done
	c.connected.Store(true)
	c.mu.Unlock()

	c.logger.Info("connected",
		"client_id", clientID,
		"server_version", hello.Version,
		"server_time", hello.Time,
		"remote", conn.RemoteAddr().String())
	for _, h := range c.opts.Hooks {
		h.Connected(hello)
	}

	go c.readLoop(conn, dec, hello.Version, done)
	return nil
}

// handshake exchanges versions and identifies the client. Called with mu
// held.
func (c *Client) handshake(ctx context.Context, conn net.Conn, clientID int) (*protocol.Decoder, protocol.ServerHello, error) {
	var hello protocol.ServerHello
	if dl, ok := ctx.Deadline(); ok {
		conn.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Unix(1, 0))
	})
	defer func() {
		stop()
		conn.SetDeadline(time.Time{})
	}()

	if err := protocol.WriteClientVersion(conn); err != nil {
		return nil, hello, fmt.Errorf("client: send version: %w", err)
	}
	dec := protocol.NewDecoder(conn)
	hello, err := protocol.ReadServerHello(dec)
	if err != nil {
		return nil, hello, err
	}

	e := protocol.NewEncoder()
	if protocol.EncodeClientID(e, hello.Version, clientID, c.opts.ExtraAuth) {
		if _, err := conn.Write(e.Bytes()); err != nil {
			return nil, hello, fmt.Errorf("client: send client id: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, hello, err
	}
	return dec, hello, nil
}

// Disconnect closes the connection. ConnectionClosed is not reported for
// a disconnect the application asked for.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return
	}
	c.logger.Info("disconnecting")
	c.teardown(conn, false)
}

// IsConnected reports whether a session is established.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// ServerVersion returns the negotiated server version, 0 when
// disconnected.
func (c *Client) ServerVersion() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverVersion
}

// ConnectionTime returns the server time sent in the handshake.
func (c *Client) ConnectionTime() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverTime
}

// Done returns a channel closed when the current connection's reader has
// stopped. It is already closed when the client is disconnected.
func (c *Client) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return c.done
}

func (c *Client) readLoop(conn net.Conn, dec *protocol.Decoder, serverVersion int, done chan struct{}) {
	defer close(done)

	d := protocol.NewDispatcher(dec, serverVersion, c.sink)
	for {
		start := time.Now()
		tag, err := d.Next()
		if tag > 0 {
			for _, h := range c.opts.Hooks {
				h.Received(tag, time.Since(start), err)
			}
		}
		if err == nil {
			continue
		}

		switch {
		case errors.Is(err, protocol.ErrEndOfStream):
			c.logger.Info("server ended the session")
		case errors.Is(err, protocol.ErrUnknownMessage):
			if c.isCurrent(conn) {
				c.logger.Error("unknown message id", "tag", int(tag))
				c.report(clienterr.New(clienterr.UnknownID).WithCause(err))
			}
		default:
			if c.isCurrent(conn) {
				c.logger.Error("read failed", "tag", tag.String(), "error", err)
				c.sink.ConnectionError(err)
			}
		}
		c.teardown(conn, true)
		return
	}
}

func (c *Client) isCurrent(conn net.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn == conn && c.connected.Load()
}

// teardown ends the session on conn if it is still the current one. Only
// the first caller for a connection reaches the notifications.
func (c *Client) teardown(conn net.Conn, notify bool) {
	c.mu.Lock()
	if conn == nil || c.conn != conn {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.connected.Store(false)
	c.serverVersion = 0
	c.serverTime = ""
	c.clientID = -1
	c.extraAuth = false
	c.mu.Unlock()

	conn.Close()
	for _, h := range c.opts.Hooks {
		h.Disconnected()
	}
	if notify {
		c.logger.Info("connection closed")
		c.sink.ConnectionClosed()
	}
}

func (c *Client) startAPI() error {
	c.mu.Lock()
	id := c.clientID
	c.mu.Unlock()
	return c.send(&protocol.StartAPI{ClientID: id}, nil)
}

// Send validates and writes any request. The typed methods are thin
// wrappers around it.
func (c *Client) Send(r protocol.Request) error {
	return c.send(r, nil)
}

// send writes r as one message. check runs with mu held after validation
// and may veto the request.
func (c *Client) send(r protocol.Request, check func() *clienterr.ClientError) error {
	c.mu.Lock()
	conn := c.conn
	if conn == nil || !c.connected.Load() {
		c.mu.Unlock()
		return c.fail(clienterr.New(clienterr.NotConnected).WithCause(ErrNotConnected))
	}
	sv := c.serverVersion

	if a, ok := r.(protocol.Advisor); ok {
		for _, adv := range a.Advisories(sv) {
			c.logger.Warn("field not supported by server, not sent",
				"tag", r.Tag().String(),
				"id", adv.ID,
				"server_version", sv,
				"detail", strings.TrimSpace(adv.Message))
		}
	}

	e := protocol.NewEncoder()
	if err := r.Encode(e, sv); err != nil {
		c.mu.Unlock()
		var capErr *protocol.CapabilityError
		if errors.As(err, &capErr) {
			return c.fail(clienterr.New(clienterr.UpdateTWS).
				WithID(capErr.ID).
				WithDetail(capErr.Message).
				WithCause(capErr))
		}
		return err
	}
	if check != nil {
		if ce := check(); ce != nil {
			c.mu.Unlock()
			return c.fail(ce)
		}
	}

	info := SendInfo{Tag: r.Tag(), ID: r.RequestID(), Bytes: e.Len()}
	err := c.runSendHooks(info, func() error {
		_, err := conn.Write(e.Bytes())
		return err
	})
	c.mu.Unlock()
	if err == nil {
		return nil
	}

	ce := clienterr.New(failCode(r.Tag())).WithID(r.RequestID()).Wrap(err)
	c.logger.Error("send failed", "tag", r.Tag().String(), "id", r.RequestID(), "error", err)
	c.report(ce)
	c.teardown(conn, true)
	return &SendError{Tag: r.Tag(), ID: r.RequestID(), Err: ce}
}

func (c *Client) runSendHooks(info SendInfo, write func() error) error {
	next := write
	for i := len(c.opts.Hooks) - 1; i >= 0; i-- {
		h, inner := c.opts.Hooks[i], next
		next = func() error { return h.Send(info, inner) }
	}
	return next()
}

// report delivers a client-side error to the sink.
func (c *Client) report(ce *clienterr.ClientError) {
	c.logger.Debug("client error", "id", ce.ID, "code", ce.Code, "message", ce.Text())
	c.sink.Error(protocol.ErrorMessage{ID: ce.ID, Code: ce.Code, Message: ce.Text()})
}

func (c *Client) fail(ce *clienterr.ClientError) error {
	c.report(ce)
	return ce
}
