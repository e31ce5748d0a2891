package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/handler/function"
	"github.com/MKhiriev/go-trip-keeper/internal/handler/http"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// main runs the account function endpoints behind an API Gateway HTTP API.
// Storages are opened once per execution environment and reused across
// invocations.
func main() {
	log := logger.NewLogger("trip-keeper-functions")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid function configs")
	}
	logger.SetLevel(cfg.App.LogLevel)
	utils.InitHasherPool(cfg.App.HashKey)

	ctx := context.Background()
	storages, err := store.NewStorages(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(ctx, storages, build, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	router := http.NewHandler(services, storages.PhotoStorage, cfg.App.HashKey, log).InitFunctions()
	lambda.StartWithOptions(function.NewProxy(router, log).Handle, lambda.WithContext(ctx))
}
