package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

func TestNewAppInfoService_ReturnsAppInfoServiceInterface(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("", "", ""), config.App{}, logger.Nop())

	require.NotNil(t, svc)
	// compile-time check: returned value must satisfy the interface
	var _ AppInfoService = svc
}

func TestGetAppVersion(t *testing.T) {
	tests := []struct {
		name  string
		build models.AppBuildInfo
		cfg   config.App
		want  models.VersionResponse
	}{
		{
			name:  "linked build info",
			build: models.NewAppBuildInfo("v1.2.0", "2026-10-01", "abc123"),
			cfg:   config.App{Version: "ignored"},
			want:  models.VersionResponse{Version: "v1.2.0", Date: "2026-10-01", Commit: "abc123"},
		},
		{
			name:  "configured fallback",
			build: models.NewAppBuildInfo("", "", ""),
			cfg:   config.App{Version: "2.5.1"},
			want:  models.VersionResponse{Version: "2.5.1", Date: "N/A", Commit: "N/A"},
		},
		{
			name:  "nothing known",
			build: models.NewAppBuildInfo("", "", ""),
			want:  models.VersionResponse{Version: "N/A", Date: "N/A", Commit: "N/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAppInfoService(tt.build, tt.cfg, logger.Nop())
			assert.Equal(t, tt.want, svc.GetAppVersion(context.Background()))
		})
	}
}
