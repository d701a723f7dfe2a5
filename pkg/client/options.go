package client

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/vango-dev/ibtws/pkg/protocol"
)

// Options configures a Client.
type Options struct {
	// Logger receives lifecycle and failure logs.
	// Default: slog.Default().
	Logger *slog.Logger

	// Hooks observe traffic. They run in order; the first hook's Send
	// wraps all later ones.
	Hooks []Hook

	// ExtraAuth defers START_API until a successful VerifyCompleted.
	// Only meaningful against servers with linking support.
	ExtraAuth bool

	// ConnectTimeout bounds dial plus handshake when the context passed
	// to Connect has no deadline.
	// Default: 10 seconds.
	ConnectTimeout time.Duration

	// Dial opens the transport. Default: net.Dialer.DialContext.
	Dial func(ctx context.Context, network, addr string) (net.Conn, error)
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 10 * time.Second
	}
	if o.Dial == nil {
		var d net.Dialer
		o.Dial = d.DialContext
	}
	return o
}

// Hook observes a Client's traffic. Implementations must be safe for
// concurrent use: Send runs on the caller's goroutine, Received on the
// reader goroutine.
type Hook interface {
	// Send wraps one request write. next performs the write and must be
	// called exactly once.
	Send(info SendInfo, next func() error) error

	// Received is called after each inbound message, once its events were
	// delivered or decoding failed.
	Received(tag protocol.InTag, elapsed time.Duration, err error)

	// Connected is called when a handshake completes.
	Connected(hello protocol.ServerHello)

	// Disconnected is called when the connection ends for any reason.
	Disconnected()
}

// SendInfo describes an outbound request.
type SendInfo struct {
	Tag   protocol.OutTag
	ID    int
	Bytes int
}

// NopHook implements Hook with no effect. Embed it to observe only part
// of the traffic.
type NopHook struct{}

func (NopHook) Send(_ SendInfo, next func() error) error      { return next() }
func (NopHook) Received(protocol.InTag, time.Duration, error) {}
func (NopHook) Connected(protocol.ServerHello)                {}
func (NopHook) Disconnected()                                 {}
