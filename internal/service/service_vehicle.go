package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// MaxPhotoSize is the largest accepted vehicle photo.
const MaxPhotoSize = 5 << 20

// photoExtensions lists the accepted photo content types.
var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type vehicleService struct {
	vehicles store.VehicleRepository
	photos   store.PhotoStorage
	ids      utils.IDGenerator
	broker   ChangeBroker
	urlTTL   time.Duration

	logger *logger.Logger
}

// NewVehicleService returns the VehicleService backed by vehicles. Photos
// are kept in photos and handed out as urls valid for urlTTL.
func NewVehicleService(vehicles store.VehicleRepository, photos store.PhotoStorage, ids utils.IDGenerator, broker ChangeBroker, urlTTL time.Duration, logger *logger.Logger) VehicleService {
	return &vehicleService{
		vehicles: vehicles,
		photos:   photos,
		ids:      ids,
		broker:   broker,
		urlTTL:   urlTTL,
		logger:   logger,
	}
}

func (s *vehicleService) ListVehicles(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	vehicles, err := s.vehicles.ListVehicles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	return vehicles, nil
}

// CreateVehicle stores vehicle under a fresh server id. Photos are only set
// through UploadPhoto.
func (s *vehicleService) CreateVehicle(ctx context.Context, userID int64, vehicle models.Vehicle) (models.Vehicle, error) {
	vehicle.ID = s.ids.Generate()
	vehicle.UserID = userID
	vehicle.PhotoPath = nil

	created, err := s.vehicles.CreateVehicle(ctx, vehicle)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("error creating vehicle")
		return models.Vehicle{}, fmt.Errorf("error creating vehicle: %w", err)
	}

	publishChange(ctx, s.broker, userID, models.ChangeVehicles, models.ChangeInsert, created.ID)
	return created, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, userID int64, vehicleID string, update models.VehicleUpdate) (models.Vehicle, error) {
	if vehicleID == "" {
		return models.Vehicle{}, ErrInvalidDataProvided
	}
	update.PhotoPath = nil

	updated, err := s.vehicles.UpdateVehicle(ctx, userID, vehicleID, update)
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("error updating vehicle %s: %w", vehicleID, err)
	}

	publishChange(ctx, s.broker, userID, models.ChangeVehicles, models.ChangeUpdate, vehicleID)
	return updated, nil
}

// DeleteVehicle removes the vehicle and then its photo. A photo that cannot
// be removed is only logged.
func (s *vehicleService) DeleteVehicle(ctx context.Context, userID int64, vehicleID string) error {
	vehicle, err := s.vehicles.GetVehicle(ctx, userID, vehicleID)
	if err != nil {
		return fmt.Errorf("error deleting vehicle %s: %w", vehicleID, err)
	}

	if err = s.vehicles.DeleteVehicle(ctx, userID, vehicleID); err != nil {
		return fmt.Errorf("error deleting vehicle %s: %w", vehicleID, err)
	}
	s.removePhoto(ctx, vehicle.PhotoPath)

	publishChange(ctx, s.broker, userID, models.ChangeVehicles, models.ChangeDelete, vehicleID)
	return nil
}

// UploadPhoto stores body under a new key, points the vehicle at it and
// drops the previous photo. size may be -1 when unknown; the body is cut
// at MaxPhotoSize either way.
func (s *vehicleService) UploadPhoto(ctx context.Context, userID int64, vehicleID, contentType string, body io.Reader, size int64) (models.Vehicle, error) {
	ext, ok := photoExtensions[contentType]
	if !ok {
		return models.Vehicle{}, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}
	if size > MaxPhotoSize {
		return models.Vehicle{}, ErrPhotoTooLarge
	}

	vehicle, err := s.vehicles.GetVehicle(ctx, userID, vehicleID)
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("error uploading photo: %w", err)
	}

	key := fmt.Sprintf("vehicles/%d/%s/%s.%s", userID, vehicleID, s.ids.Generate(), ext)
	if err = s.photos.Put(ctx, key, contentType, &maxBytesReader{r: body, left: MaxPhotoSize}, size); err != nil {
		if errors.Is(err, ErrPhotoTooLarge) {
			return models.Vehicle{}, ErrPhotoTooLarge
		}
		return models.Vehicle{}, fmt.Errorf("error storing photo: %w", err)
	}

	if err = s.vehicles.SetPhotoPath(ctx, userID, vehicleID, &key); err != nil {
		s.removePhoto(ctx, &key)
		return models.Vehicle{}, fmt.Errorf("error saving photo path: %w", err)
	}
	s.removePhoto(ctx, vehicle.PhotoPath)

	vehicle.PhotoPath = &key
	vehicle.UpdatedAt = time.Now().UTC()
	publishChange(ctx, s.broker, userID, models.ChangeVehicles, models.ChangeUpdate, vehicleID)
	return vehicle, nil
}

func (s *vehicleService) PhotoURL(ctx context.Context, userID int64, vehicleID string) (models.PhotoURLResponse, error) {
	vehicle, err := s.vehicles.GetVehicle(ctx, userID, vehicleID)
	if err != nil {
		return models.PhotoURLResponse{}, fmt.Errorf("error getting photo url: %w", err)
	}
	if vehicle.PhotoPath == nil {
		return models.PhotoURLResponse{}, ErrNoPhoto
	}

	url, expires, err := s.photos.SignedURL(ctx, *vehicle.PhotoPath, s.urlTTL)
	if err != nil {
		return models.PhotoURLResponse{}, fmt.Errorf("error signing photo url: %w", err)
	}

	return models.PhotoURLResponse{Path: *vehicle.PhotoPath, URL: url, ExpiresAt: expires}, nil
}

func (s *vehicleService) DeletePhoto(ctx context.Context, userID int64, vehicleID string) (models.Vehicle, error) {
	vehicle, err := s.vehicles.GetVehicle(ctx, userID, vehicleID)
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("error deleting photo: %w", err)
	}
	if vehicle.PhotoPath == nil {
		return models.Vehicle{}, ErrNoPhoto
	}

	if err = s.vehicles.SetPhotoPath(ctx, userID, vehicleID, nil); err != nil {
		return models.Vehicle{}, fmt.Errorf("error clearing photo path: %w", err)
	}
	s.removePhoto(ctx, vehicle.PhotoPath)

	vehicle.PhotoPath = nil
	vehicle.UpdatedAt = time.Now().UTC()
	publishChange(ctx, s.broker, userID, models.ChangeVehicles, models.ChangeUpdate, vehicleID)
	return vehicle, nil
}

func (s *vehicleService) removePhoto(ctx context.Context, key *string) {
	if key == nil {
		return
	}
	if err := s.photos.Delete(ctx, *key); err != nil && !errors.Is(err, store.ErrPhotoNotFound) {
		logger.FromContext(ctx).Warn().Err(err).Str("key", *key).Msg("photo left behind")
	}
}

// maxBytesReader fails with ErrPhotoTooLarge once more than left bytes
// have been read.
type maxBytesReader struct {
	r    io.Reader
	left int64
}

func (m *maxBytesReader) Read(p []byte) (int, error) {
	if m.left < 0 {
		return 0, ErrPhotoTooLarge
	}
	if int64(len(p)) > m.left+1 {
		p = p[:m.left+1]
	}
	n, err := m.r.Read(p)
	m.left -= int64(n)
	if m.left < 0 {
		return n, ErrPhotoTooLarge
	}
	return n, err
}
