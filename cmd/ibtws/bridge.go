package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vango-dev/ibtws/internal/config"
	"github.com/vango-dev/ibtws/pkg/bridge"
	"github.com/vango-dev/ibtws/pkg/client"
)

func bridgeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Stream gateway events to websocket subscribers",
		Long: `Keep a gateway session open and publish every decoded event
as JSON on a websocket endpoint.

Endpoints:
  /events    websocket stream, ?types=tickPrice,error filters
  /status    session state
  /metrics   Prometheus metrics
  /healthz   liveness

Examples:
  ibtws bridge
  ibtws bridge --addr=0.0.0.0:8089`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Bridge.Addr = addr
			}
			return runBridge(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from ibtws.json)")

	return cmd
}

func runBridge(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)
	reg := newRegistry()
	hub := bridge.NewHub(bridge.HubConfig{
		Buffer:   cfg.Bridge.SubscriberBuffer,
		Logger:   logger,
		Registry: reg,
	})
	st := newStack(cfg, logger, reg, hub)
	defer st.close()

	srv := bridge.NewServer(bridge.Config{
		Addr:           cfg.Bridge.Addr,
		AllowedOrigins: cfg.Bridge.AllowedOrigins,
		Gatherer:       st.registry,
		Logger:         logger,
	}, hub, st.client)

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe(ctx) }()
	success("Bridge listening on %s", cfg.Bridge.Addr)

	sessionErr := make(chan error, 1)
	go func() { sessionErr <- runSession(ctx, st) }()

	select {
	case err := <-serveErr:
		stop()
		<-sessionErr
		return err
	case err := <-sessionErr:
		stop()
		<-serveErr
		if errors.Is(err, context.Canceled) {
			fmt.Println("\n  Shutting down...")
			return nil
		}
		return err
	}
}

// runSession keeps the gateway session up, through the supervisor when
// reconnecting is enabled.
func runSession(ctx context.Context, st *stack) error {
	cfg := st.cfg
	onConnect := func(ctx context.Context, c *client.Client) {
		success("Connected to %s (server version %d)", cfg.Address(), c.ServerVersion())
		if err := c.ReqManagedAccts(); err != nil {
			st.logger.Warn("managed accounts request failed", "error", err)
		}
	}

	if cfg.Reconnect.Enabled {
		initial, maxWait := cfg.Backoff()
		sup := client.NewSupervisor(st.client, cfg.Address(), cfg.Gateway.ClientID, initial, maxWait)
		sup.OnConnect = onConnect
		return sup.Run(ctx)
	}

	if err := st.client.Connect(ctx, cfg.Address(), cfg.Gateway.ClientID); err != nil {
		return err
	}
	onConnect(ctx, st.client)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-st.client.Done():
		return errors.New("gateway closed the connection")
	}
}
