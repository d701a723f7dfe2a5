package client

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"
)

func TestSupervisorReconnects(t *testing.T) {
	var dials atomic.Int32
	servers := make(chan *fakeServer, 4)

	rec := newRecorder()
	c := New(rec, Options{
		Logger: quietLogger(),
		Dial: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if dials.Add(1) == 1 {
				return nil, errors.New("connection refused")
			}
			conn, fs := newFakeServer(t, 63)
			servers <- fs
			return conn, nil
		},
	})

	connects := make(chan struct{}, 4)
	s := NewSupervisor(c, "gateway:7496", 3, time.Millisecond, 5*time.Millisecond)
	s.OnConnect = func(ctx context.Context, c *Client) { connects <- struct{}{} }

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- s.Run(ctx) }()

	first := nextServer(t, servers)
	waitSignal(t, connects)
	if got := first.next(1); got[0] != "3" {
		t.Errorf("client id = %q, want 3", got[0])
	}

	first.send(-1)
	second := nextServer(t, servers)
	waitSignal(t, connects)
	second.next(1)

	if n := dials.Load(); n != 3 {
		t.Errorf("dials = %d, want 3", n)
	}
	if n := rec.closedCount(); n != 1 {
		t.Errorf("ConnectionClosed calls = %d, want 1", n)
	}

	cancel()
	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(testTimeout):
		t.Fatal("Run() did not return")
	}
	if c.IsConnected() {
		t.Error("IsConnected() = true after Run returned")
	}
}

func TestSupervisorStopsWhileWaiting(t *testing.T) {
	c := New(newRecorder(), Options{
		Logger: quietLogger(),
		Dial: func(context.Context, string, string) (net.Conn, error) {
			return nil, errors.New("connection refused")
		},
	})
	s := NewSupervisor(c, "gateway:7496", 1, time.Hour, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := s.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, want context.DeadlineExceeded", err)
	}
}

func TestSupervisorBackOffIntervals(t *testing.T) {
	s := NewSupervisor(New(nil, Options{Logger: quietLogger()}), "x", 1, 10*time.Millisecond, 40*time.Millisecond)
	b := s.newBackOff()
	if b.InitialInterval != 10*time.Millisecond {
		t.Errorf("InitialInterval = %v, want 10ms", b.InitialInterval)
	}
	for i := 0; i < 20; i++ {
		// Randomization may push a wait up to 1.5x the cap.
		if d := b.NextBackOff(); d > 60*time.Millisecond {
			t.Fatalf("NextBackOff() = %v, exceeds cap", d)
		}
	}
}

func nextServer(t *testing.T, ch <-chan *fakeServer) *fakeServer {
	t.Helper()
	select {
	case fs := <-ch:
		return fs
	case <-time.After(testTimeout):
		t.Fatal("no dial")
	}
	return nil
}

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(testTimeout):
		t.Fatal("no signal")
	}
}
