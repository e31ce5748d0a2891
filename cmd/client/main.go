package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/client"
	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/tui"
	"github.com/MKhiriev/go-trip-keeper/internal/workers"
	"github.com/MKhiriev/go-trip-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("trip-keeper-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	logger.SetLevel(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer localStorage.Close()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	var feed adapter.ChangeFeed
	if cfg.Adapter.GRPCAddress != "" {
		grpcFeed, err := adapter.NewGRPCChangeFeed(cfg.Adapter.GRPCAddress, log)
		if err != nil {
			log.Warn().Err(err).Msg("change feed disabled")
		} else {
			feed = grpcFeed
			defer grpcFeed.Close()
		}
	}

	prober, err := workers.NewTCPProber(cfg.Adapter.HTTPAddress, cfg.Workers.ProbeTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("create connectivity prober")
	}
	conn := workers.NewConnectivityObserver(ctx, prober, cfg.Workers.ProbeInterval, cfg.Workers.ProbeTimeout, log)

	services := service.NewClientServices(localStorage, serverAdapter, feed, conn, cfg.Workers, log)
	service.LoadCache(ctx, localStorage, services.State, log)

	ui := tui.New(services, conn, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	app := client.NewApp(services, ui, workers.NewWorkers(conn, services.SyncJob), log)

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
