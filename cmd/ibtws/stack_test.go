package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/vango-dev/ibtws/internal/config"
	"github.com/vango-dev/ibtws/pkg/gateway"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

func TestStackAgainstFakeGateway(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := gateway.New(gateway.Config{Logger: logger})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Serve(ctx, ln)

	host, port, _ := net.SplitHostPort(ln.Addr().String())
	cfg := config.New()
	cfg.Gateway.Host = host
	cfg.Gateway.Port = atoi(t, port)

	p := newPrinter()
	st := newStack(cfg, logger, newRegistry(), p)
	defer st.close()
	if st.archive != nil {
		t.Error("archive built without a bucket")
	}

	if err := st.client.Connect(ctx, cfg.Address(), 3); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if err := st.client.ReqCurrentTime(); err != nil {
		t.Fatalf("ReqCurrentTime() error = %v", err)
	}
	select {
	case <-p.times:
	case <-time.After(2 * time.Second):
		t.Fatal("no current time")
	}

	families, err := st.registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "ibtws_connected" {
			found = true
		}
	}
	if !found {
		t.Error("ibtws_connected not registered")
	}
}

func TestStackArchiveEnabled(t *testing.T) {
	cfg := config.New()
	cfg.Archive.Bucket = "reports"
	cfg.Archive.Region = "us-east-1"
	st := newStack(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), newRegistry(), protocol.NopSink{})
	if st.archive == nil {
		t.Fatal("archive not built")
	}
	st.close()
}

func atoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	if err != nil {
		t.Fatalf("Atoi(%q) error = %v", s, err)
	}
	return n
}
