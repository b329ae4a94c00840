package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"

	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	myGRPC "github.com/pentagon14032008-ux/Life-OS/internal/handler/grpc"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
)

// healthProbeInterval is how often the health status is refreshed from the
// database.
const healthProbeInterval = 10 * time.Second

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	stopWatch context.CancelFunc
	watchCtx  context.Context

	logger *logger.Logger
}

// newGRPCServer binds cfg.GRPCAddress right away so that a busy port fails
// startup instead of surfacing later.
func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("gRPC listen on %s: %w", cfg.GRPCAddress, err)
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(handler.UnaryLogging))
	handler.Register(srv)

	watchCtx, stopWatch := context.WithCancel(context.Background())

	return &grpcServer{
		handler:         handler,
		server:          srv,
		gRPCNetListener: listener,
		stopWatch:       stopWatch,
		watchCtx:        watchCtx,
		logger:          logger,
	}, nil
}

// Addr is the bound listener address, useful when the port was 0.
func (g *grpcServer) Addr() net.Addr {
	return g.gRPCNetListener.Addr()
}

func (g *grpcServer) RunServer() error {
	g.logger.Info().Str("address", g.Addr().String()).Msg("Launching GRPC server")
	go g.handler.WatchStorage(g.watchCtx, healthProbeInterval)

	if err := g.server.Serve(g.gRPCNetListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server Serve: %w", err)
	}
	return nil
}

func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.stopWatch()
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		return fmt.Errorf("gRPC graceful stop: %w", ctx.Err())
	}
}
