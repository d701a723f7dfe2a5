package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Supervisor keeps a Client connected, redialing with exponential backoff
// whenever the session drops.
type Supervisor struct {
	client   *Client
	addr     string
	clientID int
	logger   *slog.Logger

	initial time.Duration
	maxWait time.Duration

	// OnConnect runs after every successful handshake, typically to
	// resubscribe. May be nil.
	OnConnect func(ctx context.Context, c *Client)
}

// NewSupervisor returns a supervisor for c. Non-positive intervals keep the
// backoff package defaults.
func NewSupervisor(c *Client, addr string, clientID int, initial, maxWait time.Duration) *Supervisor {
	return &Supervisor{
		client:   c,
		addr:     addr,
		clientID: clientID,
		logger:   c.logger.With("component", "supervisor"),
		initial:  initial,
		maxWait:  maxWait,
	}
}

func (s *Supervisor) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	if s.initial > 0 {
		b.InitialInterval = s.initial
	}
	if s.maxWait > 0 {
		b.MaxInterval = s.maxWait
	}
	b.Reset()
	return b
}

// Run connects and reconnects until ctx is cancelled, then disconnects and
// returns ctx.Err().
func (s *Supervisor) Run(ctx context.Context) error {
	b := s.newBackOff()
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		attempt++
		err := s.client.Connect(ctx, s.addr, s.clientID)
		if err != nil {
			wait := b.NextBackOff()
			s.logger.Warn("connect failed", "addr", s.addr, "attempt", attempt, "retry_in", wait, "error", err)
			if !sleep(ctx, wait) {
				return ctx.Err()
			}
			continue
		}

		b.Reset()
		attempt = 0
		if s.OnConnect != nil {
			s.OnConnect(ctx, s.client)
		}

		select {
		case <-ctx.Done():
			s.client.Disconnect()
			return ctx.Err()
		case <-s.client.Done():
		}

		wait := b.NextBackOff()
		s.logger.Info("session ended, reconnecting", "addr", s.addr, "retry_in", wait)
		if !sleep(ctx, wait) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
