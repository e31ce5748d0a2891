package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/handler"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
)

type server struct {
	transports []transport
	logger     *logger.Logger
}

// NewServer binds a listener for every address of cfg that has a handler.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		httpSrv, err := newHTTPServer(handlers.HTTP.Init(), cfg, logger)
		if err != nil {
			return nil, err
		}
		s.transports = append(s.transports, httpSrv)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			s.Shutdown()
			return nil, err
		}
		s.transports = append(s.transports, grpcSrv)
	}

	if len(s.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx)
}

// Shutdown stops all transports in parallel.
func (s *server) Shutdown() {
	var wg sync.WaitGroup
	for _, t := range s.transports {
		wg.Go(t.shutdown)
	}
	wg.Wait()
}

func (s *server) run(ctx context.Context) {
	for _, t := range s.transports {
		s.logger.Info().Str("address", t.addr()).Msgf("Launching %s server", t.name())
		go t.serve()
	}

	<-ctx.Done()

	s.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")
}
