package server

import (
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-trip-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
)

// change feed streams stay open for hours; pings keep idle NATs from
// dropping them
const feedKeepaliveTime = time.Minute

type grpcServer struct {
	server   *grpc.Server
	listener net.Listener
	logger   *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	lis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", cfg.GRPCAddress, err)
	}

	srv := grpc.NewServer(
		grpc.StreamInterceptor(handler.StreamInterceptor()),
		grpc.KeepaliveParams(keepalive.ServerParameters{Time: feedKeepaliveTime}),
	)
	srv.RegisterService(handler.ServiceDesc(), handler)

	return &grpcServer{server: srv, listener: lis, logger: logger}, nil
}

func (g *grpcServer) name() string { return "gRPC" }

func (g *grpcServer) addr() string { return g.listener.Addr().String() }

func (g *grpcServer) serve() {
	if err := g.server.Serve(g.listener); err != nil {
		g.logger.Error().Err(err).Msg("gRPC server Serve")
	}
}

// shutdown waits for running calls up to shutdownTimeout. Feed subscriptions
// only end when their client leaves, so the rest are cut after that.
func (g *grpcServer) shutdown() {
	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(shutdownTimeout):
		g.logger.Warn().Msg("gRPC graceful stop timed out, closing open streams")
		g.server.Stop()
	}
}
