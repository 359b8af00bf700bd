package server

import (
	"context"
	"net"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/config"
	myGRPC "github.com/MKhiriev/nearmate-api/internal/handler/grpc"
	"github.com/MKhiriev/nearmate-api/internal/logger"

	"google.golang.org/grpc"
)

// healthRefreshInterval is how often the health status is re-probed.
const healthRefreshInterval = 30 * time.Second

type grpcServer struct {
	handler *myGRPC.Handler

	server  *grpc.Server
	address string

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	return &grpcServer{
		handler: handler,
		server:  handler.Init(),
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer(ctx context.Context) error {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		return err
	}

	g.handler.Refresh(ctx)
	go g.refreshHealth(ctx)

	g.logger.Info().Str("address", listener.Addr().String()).Msg("gRPC server listening")
	// Serve returns nil after GracefulStop
	return g.server.Serve(listener)
}

// Shutdown flips the health status to NOT_SERVING and stops accepting calls.
// In-flight calls are waited for until ctx is done, then cut off.
func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.logger.Info().Msg("gRPC server shutdown")
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
		return ctx.Err()
	}
}

func (g *grpcServer) refreshHealth(ctx context.Context) {
	ticker := time.NewTicker(healthRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.handler.Refresh(ctx)
		}
	}
}
