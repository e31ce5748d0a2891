package grpc

import (
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/service"
)

// Handler is the gRPC transport handler of the change feed.
//
// It keeps the service layer to authenticate subscribers and to attach them
// to the change broker. A handler instance is created once at startup and
// registered on the gRPC server through [Handler.ServiceDesc].
type Handler struct {
	services *service.Services
	logger   *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
