package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vango-dev/ibtws/pkg/gateway"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

func gatewayCmd() *cobra.Command {
	var (
		addr          string
		serverVersion int
		accounts      string
	)

	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Run a scripted gateway for local testing",
		Long: `Run a fake gateway that completes the handshake and answers
current time, next id, managed accounts, scanner parameters, FA and
contract details requests with canned replies.

Examples:
  ibtws gateway
  ibtws gateway --server-version=63
  ibtws connect --port=7497`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Fake.Addr
			}
			if serverVersion == 0 {
				serverVersion = cfg.Fake.ServerVersion
			}
			if serverVersion != 0 && serverVersion < protocol.MinServerVersion {
				errorMsg("server version %d is below the client minimum %d", serverVersion, protocol.MinServerVersion)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := gateway.New(gateway.Config{
				ServerVersion: serverVersion,
				Accounts:      accounts,
				Logger:        newLogger(cfg),
			})
			success("Fake gateway on %s (server version %d)", addr, srv.ServerVersion())
			err = srv.ListenAndServe(ctx, addr)
			if errors.Is(err, gateway.ErrServerClosed) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from ibtws.json)")
	cmd.Flags().IntVar(&serverVersion, "server-version", 0, "Announced server version (default 71)")
	cmd.Flags().StringVar(&accounts, "accounts", "", "Comma-separated managed accounts")

	return cmd
}
