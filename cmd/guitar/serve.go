package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/Isinlor/guitar/internal/metrics"
	"github.com/Isinlor/guitar/internal/server"
	"github.com/Isinlor/guitar/internal/setup"
	"github.com/Isinlor/guitar/pkg/logger"
)

func newServeCmd(a *app) *cobra.Command {
	var grpcAddr, httpAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the fingering engine over gRPC and HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Server
			if grpcAddr != "" {
				cfg.GRPCAddr = grpcAddr
			}
			if httpAddr != "" {
				cfg.HTTPAddr = httpAddr
			}

			registry, err := setup.Registry(a.cfg)
			if err != nil {
				return err
			}

			opts, err := setup.SearchOptions(a.cfg.Search)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			service := server.NewService(registry, opts, server.NewRunStore(cfg.MaxStoredRuns)).
				WithRecorder(metrics.NewRecorder(reg))

			srv, err := server.New(cfg, service, reg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting fingering server", "grpc_addr", cfg.GRPCAddr, "http_addr", cfg.HTTPAddr)
			if err := srv.Run(ctx); err != nil {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&grpcAddr, "grpc-addr", "", "gRPC listen address (overrides config)")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP listen address (overrides config)")
	return cmd
}
