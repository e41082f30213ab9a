package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/Isinlor/guitar/pkg/config"
	"github.com/Isinlor/guitar/pkg/logger"
)

// Server runs the gRPC and HTTP front ends of a Service.
type Server struct {
	cfg     config.Server
	grpc    *grpc.Server
	health  *health.Server
	http    *http.Server
	timeout time.Duration
}

// New creates a server for service. gatherer backs the /metrics endpoint
// and may be nil.
func New(cfg config.Server, service *Service, gatherer prometheus.Gatherer) (*Server, error) {
	timeout, err := cfg.GetShutdownTimeout()
	if err != nil {
		return nil, fmt.Errorf("invalid shutdown_timeout %s: %w", cfg.ShutdownTimeout, err)
	}
	grpcServer, hs := NewGRPCServer(service)
	return &Server{
		cfg:    cfg,
		grpc:   grpcServer,
		health: hs,
		http: &http.Server{
			Handler:           NewHTTPServer(service, gatherer).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		timeout: timeout,
	}, nil
}

// Run listens on the configured addresses and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var grpcLis, httpLis net.Listener
	var err error
	if s.cfg.GRPCAddr != "" {
		if grpcLis, err = net.Listen("tcp", s.cfg.GRPCAddr); err != nil {
			return fmt.Errorf("failed to listen for gRPC on %s: %w", s.cfg.GRPCAddr, err)
		}
	}
	if s.cfg.HTTPAddr != "" {
		if httpLis, err = net.Listen("tcp", s.cfg.HTTPAddr); err != nil {
			if grpcLis != nil {
				grpcLis.Close()
			}
			return fmt.Errorf("failed to listen for HTTP on %s: %w", s.cfg.HTTPAddr, err)
		}
	}
	return s.Serve(ctx, grpcLis, httpLis)
}

// Serve serves on the given listeners until ctx is done or one server
// fails, then shuts both down gracefully. A nil listener disables its
// server.
func (s *Server) Serve(ctx context.Context, grpcLis, httpLis net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	if grpcLis != nil {
		g.Go(func() error {
			logger.Info("gRPC server listening", "addr", grpcLis.Addr().String())
			if err := s.grpc.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("gRPC server error: %w", err)
			}
			return nil
		})
	}
	if httpLis != nil {
		g.Go(func() error {
			logger.Info("HTTP server listening", "addr", httpLis.Addr().String())
			if err := s.http.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown requested")
		s.health.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			s.grpc.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			s.grpc.Stop()
			<-stopped
		}
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown error", "error", err)
		}
		return nil
	})

	return g.Wait()
}
