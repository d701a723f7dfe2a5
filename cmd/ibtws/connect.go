package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vango-dev/ibtws/internal/config"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

func connectCmd() *cobra.Command {
	var (
		host     string
		port     int
		clientID int
		symbol   string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Handshake with a gateway and print its replies",
		Long: `Connect to a TWS or IB Gateway, print the negotiated server
version, the server clock and the managed accounts, then disconnect.

Examples:
  ibtws connect
  ibtws connect --port=4001 --client-id=7
  ibtws connect --symbol=IBM
  ibtws connect --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Gateway.Host = host
			}
			if port > 0 {
				cfg.Gateway.Port = port
			}
			if cmd.Flags().Changed("client-id") {
				cfg.Gateway.ClientID = clientID
			}
			return runConnect(cmd.Context(), cfg, symbol, watch)
		},
	}

	cmd.Flags().StringVarP(&host, "host", "H", "", "Gateway host (default from ibtws.json)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Gateway port (default from ibtws.json)")
	cmd.Flags().IntVar(&clientID, "client-id", 0, "Client id (default from ibtws.json)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Look up contract details for a US stock")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Stay connected and print events until interrupted")

	return cmd
}

func runConnect(parent context.Context, cfg *config.Config, symbol string, watch bool) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := newPrinter()
	st := newStack(cfg, newLogger(cfg), newRegistry(), p)
	defer st.close()

	if err := st.client.Connect(ctx, cfg.Address(), cfg.Gateway.ClientID); err != nil {
		errorMsg("connect to %s failed", cfg.Address())
		return err
	}
	success("Connected to %s", cfg.Address())
	info("Server version: %d", st.client.ServerVersion())
	info("Server time:    %s", st.client.ConnectionTime())

	if err := st.client.ReqCurrentTime(); err != nil {
		return err
	}
	select {
	case t := <-p.times:
		info("Server clock:   %s", time.Unix(t.Time, 0).Format(time.RFC3339))
	case <-time.After(5 * time.Second):
		warn("No reply to REQ_CURRENT_TIME")
	case <-ctx.Done():
		return nil
	}

	if symbol != "" {
		if err := lookup(ctx, st, symbol); err != nil {
			return err
		}
	}

	if !watch {
		return nil
	}
	info("Watching, press Ctrl+C to stop")
	p.verbose.Store(true)
	select {
	case <-ctx.Done():
		fmt.Println()
	case <-st.client.Done():
		warn("Connection closed by server")
	}
	return nil
}

func lookup(ctx context.Context, st *stack, symbol string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	contract := &protocol.Contract{Symbol: symbol, SecType: "STK", Exchange: "SMART", Currency: "USD"}
	details, err := st.tracker.ContractDetails(ctx, st.client, 1, contract)
	if err != nil {
		return fmt.Errorf("contract details for %s: %w", symbol, err)
	}
	if len(details) == 0 {
		warn("No contract found for %s", symbol)
		return nil
	}
	for _, d := range details {
		c := d.Summary
		success("%s %s conId=%d %s/%s %s", c.Symbol, c.SecType, c.ConID, c.Exchange, c.PrimaryExchange, d.LongName)
	}
	return nil
}
