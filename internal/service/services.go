package service

import (
	"context"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/crypto"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/internal/validators"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// Services groups the server services shared by the HTTP, gRPC and
// function handlers.
type Services struct {
	AppInfoService     AppInfoService
	AuthService        AuthService
	TripService        TripService
	VehicleService     VehicleService
	TripVehicleService TripVehicleService
	AccountService     AccountService
	ChangeBroker       ChangeBroker
}

func NewServices(ctx context.Context, storages *store.Storages, build models.AppBuildInfo, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	logger.Info().Msg("creating new services...")

	mailer, err := NewMailer(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewValidator()
	ids := utils.NewUUIDGenerator()
	broker := NewChangeBroker(logger)

	trips := NewTripValidationService(validator).
		Wrap(NewTripService(storages.TripRepository, ids, broker, logger))
	vehicles := NewVehicleValidationService(validator).
		Wrap(NewVehicleService(storages.VehicleRepository, storages.PhotoStorage, ids, broker, cfg.Storage.Photos.URLTTL, logger))

	return &Services{
		AppInfoService:     NewAppInfoService(build, cfg.App, logger),
		AuthService:        NewAuthService(storages.UserRepository, crypto.NewPasswordHasher(), validator, cfg.App, logger),
		TripService:        trips,
		VehicleService:     vehicles,
		TripVehicleService: NewTripVehicleService(storages.TripRepository, storages.TripVehicleRepository, storages.SegmentRepository, ids, broker, validator, logger),
		AccountService:     NewAccountService(storages, mailer, validator, cfg.Mail.AppName, logger),
		ChangeBroker:       broker,
	}, nil
}
