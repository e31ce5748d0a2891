package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
)

// Storages groups the server repositories and the photo storage.
type Storages struct {
	UserRepository        UserRepository
	TripRepository        TripRepository
	VehicleRepository     VehicleRepository
	TripVehicleRepository TripVehicleRepository
	SegmentRepository     SegmentRepository
	PhotoStorage          PhotoStorage

	db *DB
}

// NewStorages connects to PostgreSQL, applies the migrations and wires the
// repositories. Photos go to S3 when a bucket is configured, otherwise to
// the local photo directory.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.Storage.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	photos, err := NewPhotoStorage(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	ids := utils.NewUUIDGenerator()
	return &Storages{
		UserRepository:        NewUserRepository(db, logger),
		TripRepository:        NewTripRepository(db, ids, logger),
		VehicleRepository:     NewVehicleRepository(db, logger),
		TripVehicleRepository: NewTripVehicleRepository(db, logger),
		SegmentRepository:     NewSegmentRepository(db, logger),
		PhotoStorage:          photos,
		db:                    db,
	}, nil
}

// NewPhotoStorage picks the S3 or the local photo storage from cfg.
func NewPhotoStorage(ctx context.Context, cfg *config.StructuredConfig, logger *logger.Logger) (PhotoStorage, error) {
	photos := cfg.Storage.Photos

	if photos.Bucket != "" {
		awsCfg, err := utils.LoadAWSConfig(ctx, cfg.AWS.Region, cfg.AWS.Endpoint)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("bucket", photos.Bucket).Msg("storing photos in S3")
		return NewS3PhotoStorage(awsCfg, photos.Bucket, photos.Prefix, logger), nil
	}

	publicURL := photos.PublicURL
	if publicURL == "" {
		publicURL = "http://" + cfg.Server.HTTPAddress
	}
	logger.Info().Str("dir", photos.Dir).Msg("storing photos on local disk")
	return NewLocalPhotoStorage(photos.Dir, publicURL, cfg.App.HashKey, logger)
}

// Close releases the database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
