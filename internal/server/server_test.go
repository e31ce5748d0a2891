package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/handler"
	myGRPC "github.com/MKhiriev/go-trip-keeper/internal/handler/grpc"
	myHTTP "github.com/MKhiriev/go-trip-keeper/internal/handler/http"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
)

func testHandlers() *handler.Handlers {
	return &handler.Handlers{
		HTTP: myHTTP.NewHandler(nil, nil, "", logger.Nop()),
		GRPC: myGRPC.NewHandler(nil, logger.Nop()),
	}
}

func TestNewServer_NoAddresses(t *testing.T) {
	s, err := NewServer(testHandlers(), config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_GRPCAddressTaken(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	_, err = NewServer(testHandlers(), config.Server{GRPCAddress: lis.Addr().String()}, logger.Nop())

	assert.Error(t, err)
}

func TestNewServer_HTTPAddressTaken(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	_, err = NewServer(testHandlers(), config.Server{HTTPAddress: lis.Addr().String(), GRPCAddress: "127.0.0.1:0"}, logger.Nop())

	assert.Error(t, err)
}

func TestServer_RunAndShutdown(t *testing.T) {
	cfg := config.Server{
		HTTPAddress:    "127.0.0.1:0",
		GRPCAddress:    "127.0.0.1:0",
		RequestTimeout: time.Second,
	}
	s, err := NewServer(testHandlers(), cfg, logger.Nop())
	require.NoError(t, err)

	srv := s.(*server)
	require.Len(t, srv.transports, 2)
	httpSrv := srv.transports[0].(*httpServer)
	grpcSrv := srv.transports[1].(*grpcServer)
	assert.Equal(t, time.Second, httpSrv.server.WriteTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.run(ctx)
		close(done)
	}()

	for _, addr := range []string{httpSrv.addr(), grpcSrv.addr()} {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		require.NoError(t, err)
		conn.Close()
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
