package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielpatrickdp/mandeval/internal/rpc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// #region serve-cmd
func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve estimates over gRPC",
		Long: `Starts the mandeval.v1.SupportService gRPC server. Requests are written to
the estimate log in the configured database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.ListenAddr
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sim, err := a.simulator()
			if err != nil {
				return err
			}

			lis, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}

			gs := grpc.NewServer()
			rpc.RegisterSupportServiceServer(gs, rpc.NewServer(sim, store, a.logger, rpc.WithSettings(a.cfg.Settings)))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				a.logger.Info("shutting down")
				gs.GracefulStop()
			}()

			a.logger.Info("serving",
				zap.String("addr", lis.Addr().String()),
				zap.String("db", a.cfg.DBPath),
				zap.String("panel", sim.Fingerprint()))
			return gs.Serve(lis)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config listen_addr)")
	return cmd
}
// #endregion serve-cmd
