package service

import (
	"context"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type appInfoService struct {
	version models.VersionResponse

	logger *logger.Logger
}

// NewAppInfoService reports build. A binary built without linker flags
// falls back to the configured version.
func NewAppInfoService(build models.AppBuildInfo, cfg config.App, logger *logger.Logger) AppInfoService {
	version := build.Response()
	if version.Version == "N/A" && cfg.Version != "" {
		version.Version = cfg.Version
	}

	return &appInfoService{
		version: version,
		logger:  logger,
	}
}

func (s *appInfoService) GetAppVersion(ctx context.Context) models.VersionResponse {
	return s.version
}
